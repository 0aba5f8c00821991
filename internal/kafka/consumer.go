package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer loop uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer feeds notification messages to a handler. Handler failures are
// logged and the loop moves on: notifications are best effort and never
// retried.
type Consumer struct {
	reader MessageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}))
}

func newConsumer(reader MessageReader) *Consumer {
	return &Consumer{reader: reader}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume runs until reading fails, which includes ctx being canceled.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return fmt.Errorf("read notification: %w", err)
		}

		if err := handler(ctx, msg); err != nil {
			log.Printf("notification at offset %d failed, skipping: %v", msg.Offset, err)
		}
	}
}

// DecodeNotifications adapts a notification handler to raw messages. Messages
// that do not decode are logged and skipped so one bad record cannot stall the
// group.
func DecodeNotifications(handle func(context.Context, NotificationEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event NotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("decode notification at offset %d: %v", msg.Offset, err)
			return nil
		}
		return handle(ctx, event)
	}
}
