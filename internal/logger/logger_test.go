package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_DefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "nonsense")

	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "debug")

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l := FromContext(ctx, base)
	l.Info().Msg("traced")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", line["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", line["span_id"])
}

func TestFromContext_PrefersStoredLogger(t *testing.T) {
	var fallbackBuf, storedBuf bytes.Buffer
	fallback := New(&fallbackBuf, "info")
	stored := New(&storedBuf, "info").With().Str("request_id", "req-1").Logger()

	ctx := WithContext(context.Background(), stored)
	l := FromContext(ctx, fallback)
	l.Info().Msg("hello")

	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, storedBuf.String(), "req-1")
}
