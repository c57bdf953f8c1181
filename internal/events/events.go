// Package events publishes booking lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibridshopp01/booking-backend/internal/config"
	"github.com/hibridshopp01/booking-backend/internal/model"
	"github.com/segmentio/kafka-go"
)

// Type identifies what happened to a booking.
type Type string

const (
	TypeBookingCreated       Type = "booking.created"
	TypeBookingStatusChanged Type = "booking.status_changed"
)

// Header keys attached to every published message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

const source = "booking-backend"

// Event is the payload written to the booking events topic.
type Event struct {
	ID         string        `json:"event_id"`
	Type       Type          `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`
	Booking    model.Booking `json:"booking"`
}

// NewEvent stamps a booking snapshot with a fresh event ID.
func NewEvent(t Type, b model.Booking) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Booking:    b,
	}
}

// Publisher delivers booking events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// KafkaPublisher writes events to a Kafka topic, keyed by booking ID so
// that all events of one booking land on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher for cfg. It does not dial until the
// first Publish.
func NewKafkaPublisher(cfg config.Kafka, log *slog.Logger) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			BatchTimeout: 50 * time.Millisecond,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				log.Error("kafka writer", "detail", fmt.Sprintf(msg, args...))
			}),
		},
	}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	msg, err := encode(e)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(e.Booking.ID, 10)),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(e.ID)},
			{Key: HeaderEventType, Value: []byte(e.Type)},
			{Key: HeaderSource, Value: []byte(source)},
		},
	}, nil
}
