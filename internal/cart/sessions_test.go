package cart

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

func newTestSessions(t *testing.T) (*Sessions, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	s := NewSessions(newMockCatalog(p1, p2), time.Hour, clock, zerolog.Nop())
	t.Cleanup(s.Close)
	return s, clock
}

func TestSessions_GetReturnsSameEngine(t *testing.T) {
	s, _ := newTestSessions(t)

	a := s.Get("dev-a")
	require.NoError(t, a.AddItem("p1", false, domain.FrequencyNone))

	assert.Same(t, a, s.Get("dev-a"))
	assert.NotSame(t, a, s.Get("dev-b"))
	assert.True(t, s.Get("dev-b").Snapshot().IsEmpty(), "carts are per session")
	assert.Equal(t, 2, s.Len())
}

func TestSessions_Drop(t *testing.T) {
	s, _ := newTestSessions(t)
	require.NoError(t, s.Get("dev-a").AddItem("p1", false, domain.FrequencyNone))

	s.Drop("dev-a")
	assert.Zero(t, s.Len())
	assert.True(t, s.Get("dev-a").Snapshot().IsEmpty())
}

func TestSessions_ExpireIdle(t *testing.T) {
	s, clock := newTestSessions(t)

	s.Get("idle")
	clock.Advance(40 * time.Minute)
	s.Get("active")
	clock.Advance(30 * time.Minute)

	s.expireIdle()

	assert.Equal(t, 1, s.Len())
	s.mu.Lock()
	_, activeKept := s.sessions["active"]
	s.mu.Unlock()
	assert.True(t, activeKept)
}

func TestSessions_CleanupLoopExpires(t *testing.T) {
	s, clock := newTestSessions(t)
	s.Get("dev-a")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Hour + CleanupInterval)

	require.Eventually(t, func() bool {
		return s.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSessions_CloseIsIdempotent(t *testing.T) {
	s := NewSessions(newMockCatalog(), 0, clockwork.NewFakeClock(), zerolog.Nop())
	assert.Equal(t, DefaultIdleTTL, s.idleTTL)
	s.Close()
	s.Close()
}
