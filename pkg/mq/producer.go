package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// Producer publishes keyed JSON messages to one topic.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg Config) (*Producer, error) {
	n := cfg.normalize()
	if err := n.validateProducer(); err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(n.Brokers...),
		Topic:                  n.Topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           n.BatchTimeout,
		MaxAttempts:            n.MaxAttempts,
	}
	if n.ClientID != "" {
		writer.Transport = &kafka.Transport{ClientID: n.ClientID}
	}

	slog.Info("mq: producer ready", "config", n.String())
	return &Producer{writer: writer, topic: n.Topic}, nil
}

// Publish marshals payload and writes it under key. Messages sharing a key
// land on the same partition, so events for one form stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, payload interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mq: marshal %T: %w", payload, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
