// Package events publishes catalog revalidation notices to Kafka so that
// page renderers can drop their stale copies.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"watch-storefront/config"

	"github.com/segmentio/kafka-go"
)

type Publisher struct {
	writer *kafka.Writer
	topic  string
	log    *slog.Logger
}

func NewPublisher(cfg config.KafkaConfig, log *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
	}

	log.Info("kafka publisher created", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return &Publisher{writer: writer, topic: cfg.Topic, log: log}
}

// Publish writes value as JSON under key. Messages for the same key land on
// the same partition.
func (p *Publisher) Publish(ctx context.Context, key string, value interface{}) error {
	msg, err := message(key, value)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.ErrorContext(ctx, "failed to send kafka message", "topic", p.topic, "key", key, "error", err)
		return err
	}

	p.log.DebugContext(ctx, "kafka message sent", "topic", p.topic, "key", key)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func message(key string, value interface{}) (kafka.Message, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}
