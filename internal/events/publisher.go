// Package events publishes order lifecycle events for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

const (
	TopicOrderPlaced     = "order-placed"
	EventTypeOrderPlaced = "order.placed"
)

type OrderPlaced struct {
	OrderID       string               `json:"order_id"`
	Namespace     string               `json:"namespace"`
	Items         []domain.OrderItem   `json:"items"`
	Total         int64                `json:"total"`
	MartName      string               `json:"mart_name"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PlacedAt      time.Time            `json:"placed_at"`
}

func NewOrderPlaced(namespace string, o domain.Order) OrderPlaced {
	return OrderPlaced{
		OrderID:       o.ID,
		Namespace:     namespace,
		Items:         append([]domain.OrderItem(nil), o.Items...),
		Total:         o.Total,
		MartName:      o.MartName,
		PaymentMethod: o.PaymentMethod,
		PlacedAt:      o.CreatedAt,
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
	Close() error
}

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicOrderPlaced,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}
	return &KafkaPublisher{writer: w, timeout: 5 * time.Second}
}

// PublishOrderPlaced writes ev keyed by order id, so events for one order
// land on one partition.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeOrderPlaced)},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventTypeOrderPlaced, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishOrderPlaced(_ context.Context, ev OrderPlaced) error {
	p.log.Info().
		Str("event_type", EventTypeOrderPlaced).
		Str("order_id", ev.OrderID).
		Str("namespace", ev.Namespace).
		Int64("total", ev.Total).
		Str("mart", ev.MartName).
		Msg("event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
