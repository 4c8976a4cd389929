package mq

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Message is a consumed Kafka record.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
	Time    time.Time
}

type Handler func(context.Context, Message) error

// Consumer reads a topic as part of a consumer group and commits each
// message after its handler returns.
type Consumer struct {
	reader      *kafka.Reader
	handler     Handler
	maxAttempts int
}

func NewConsumer(cfg Config, handler Handler) (*Consumer, error) {
	n := cfg.normalize()
	if err := n.validateConsumer(); err != nil {
		return nil, err
	}

	readerCfg := kafka.ReaderConfig{
		Brokers:  n.Brokers,
		Topic:    n.Topic,
		GroupID:  n.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	}
	if n.ClientID != "" {
		readerCfg.Dialer = &kafka.Dialer{ClientID: n.ClientID, Timeout: 10 * time.Second}
	}

	slog.Info("mq: consumer ready", "config", n.String())
	return &Consumer{
		reader:      kafka.NewReader(readerCfg),
		handler:     handler,
		maxAttempts: n.MaxAttempts,
	}, nil
}

// Run blocks until ctx is cancelled. A message whose handler keeps failing
// is logged and committed so it cannot wedge the partition.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil || c.reader == nil {
		return nil
	}

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return err
		}

		c.dispatch(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("mq: commit failed", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message) {
	if c.handler == nil {
		return
	}
	payload := toMessage(msg)
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err := c.handler(ctx, payload)
		if err == nil {
			return
		}
		slog.Warn("mq: handler error",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"attempt", attempt,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
		}
	}
	slog.Error("mq: dropping message after retries", "topic", msg.Topic, "offset", msg.Offset, "key", string(msg.Key))
}

func toMessage(msg kafka.Message) Message {
	out := Message{
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: make(map[string]string, len(msg.Headers)),
		Time:    msg.Time,
	}
	for _, h := range msg.Headers {
		out.Headers[h.Key] = string(h.Value)
	}
	return out
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
