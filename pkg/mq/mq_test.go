package mq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Brokers: []string{" a:9092 ", "", "b:9092"}, Topic: " forms ", GroupID: " g "}
	n := cfg.normalize()

	assert.Equal(t, []string{"a:9092", "b:9092"}, n.Brokers)
	assert.Equal(t, "forms", n.Topic)
	assert.Equal(t, "g", n.GroupID)
	assert.Equal(t, 3, n.MaxAttempts)
	assert.Equal(t, 10*time.Millisecond, n.BatchTimeout)
	assert.True(t, cfg.Enabled())
	assert.False(t, Config{Brokers: []string{" "}}.Enabled())
	assert.Contains(t, cfg.String(), "brokers=a:9092,b:9092")
}

func TestNewProducerValidation(t *testing.T) {
	_, err := NewProducer(Config{Topic: "forms"})
	assert.EqualError(t, err, "mq: at least one broker must be configured")

	_, err = NewProducer(Config{Brokers: []string{"localhost:9092"}})
	assert.EqualError(t, err, "mq: topic must be provided")

	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}, Topic: "forms", ClientID: "api"})
	require.NoError(t, err)
	assert.Equal(t, "forms", p.topic)
	assert.NoError(t, p.Close())
}

func TestNewConsumerRequiresGroup(t *testing.T) {
	_, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}, Topic: "forms"}, nil)
	assert.EqualError(t, err, "mq: group id must be provided")
}

func TestNilProducerIsNoop(t *testing.T) {
	var p *Producer
	assert.NoError(t, p.Publish(context.Background(), "k", map[string]string{"a": "b"}))
	assert.NoError(t, p.Close())
}

func TestDispatchRetriesThenGivesUp(t *testing.T) {
	calls := 0
	c := &Consumer{
		maxAttempts: 2,
		handler: func(ctx context.Context, m Message) error {
			calls++
			assert.Equal(t, "json", m.Headers["type"])
			return errors.New("boom")
		},
	}
	c.dispatch(context.Background(), kafka.Message{
		Key:     []byte("F1"),
		Value:   []byte(`{}`),
		Headers: []kafka.Header{{Key: "type", Value: []byte("json")}},
	})
	assert.Equal(t, 2, calls)
}

func TestDispatchStopsOnSuccess(t *testing.T) {
	calls := 0
	c := &Consumer{
		maxAttempts: 3,
		handler: func(ctx context.Context, m Message) error {
			calls++
			return nil
		},
	}
	c.dispatch(context.Background(), kafka.Message{Key: []byte("F1")})
	assert.Equal(t, 1, calls)
}
