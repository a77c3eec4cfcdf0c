package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/HarisNvr/test-case-shop/internal/service"
)

const (
	writeTimeout = 5 * time.Second
	batchTimeout = 10 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// CartEvent is the JSON payload written to the cart topic.
type CartEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	ProductID  uint      `json:"product_id,omitempty"`
	Quantity   string    `json:"quantity,omitempty"`
	Removed    int64     `json:"removed,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Producer struct {
	writer messageWriter
	now    func() time.Time
}

// NewProducer writes to topic on brokers. Messages are keyed by user id so a
// user's events stay ordered within one partition.
func NewProducer(brokers []string, topic string) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
		BatchTimeout:           batchTimeout,
	}
	return &Producer{writer: w, now: time.Now}
}

func (p *Producer) PublishEvent(ctx context.Context, ev service.Event) error {
	msg, err := p.message(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s failed: %w", ev.Type, err)
	}
	return nil
}

func (p *Producer) message(ev service.Event) (kafka.Message, error) {
	payload := CartEvent{
		Type:       ev.Type,
		UserID:     ev.UserID.String(),
		ProductID:  ev.ProductID,
		Removed:    ev.Removed,
		OccurredAt: p.now().UTC(),
	}
	if !ev.Quantity.IsZero() {
		payload.Quantity = ev.Quantity.String()
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	return kafka.Message{
		Key:   []byte(payload.UserID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
