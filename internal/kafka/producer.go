package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/lastchanceair/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventBookingConfirmed = "booking_confirmed"
	EventPasswordReset    = "password_reset"
)

// NotificationEvent is the wire form of a queued notification.
type NotificationEvent struct {
	Type      string          `json:"type"`
	To        string          `json:"to"`
	Booking   *domain.Booking `json:"booking,omitempty"`
	Flight    *domain.Flight  `json:"flight,omitempty"`
	ResetLink string          `json:"reset_link,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Key partitions booking events by reference and reset events by recipient.
func (e NotificationEvent) Key() string {
	if e.Booking != nil {
		return e.Booking.BookingRef
	}
	return e.To
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	log.Printf("published to kafka topic=%s key=%s", topic, key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and lists partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	log.Printf("connected to kafka, %d partitions visible", len(partitions))
	return nil
}

// TopicPublisher binds a producer to one topic.
type TopicPublisher struct {
	producer *Producer
	topic    string
}

func NewTopicPublisher(producer *Producer, topic string) *TopicPublisher {
	return &TopicPublisher{producer: producer, topic: topic}
}

func (t *TopicPublisher) Deliver(ctx context.Context, event NotificationEvent) error {
	return t.producer.Publish(ctx, t.topic, event.Key(), event)
}
