package repository

import (
	"context"

	"StayPulse/internal/domain/models"
	"StayPulse/internal/domain/repository"
	pkgkafka "StayPulse/pkg/kafka"
)

// KafkaPublisher emits dashboard update events to a Kafka topic.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka-backed update event publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev models.UpdateEvent) error {
	key := []byte(ev.Filter)
	if len(key) == 0 {
		key = []byte("all")
	}
	return p.producer.Publish(ctx, p.topic, key, ev)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher is used when the event stream is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.UpdateEvent) error { return nil }
func (NoopPublisher) Close() error                                      { return nil }
