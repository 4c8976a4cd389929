package mq

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config describes one Kafka topic shared by the API (publisher) and the
// notifier worker (consumer).
type Config struct {
	Brokers      []string
	Topic        string
	GroupID      string
	ClientID     string
	BatchTimeout time.Duration
	MaxAttempts  int
}

// Enabled reports whether any broker is configured.
func (cfg Config) Enabled() bool {
	return len(cfg.normalize().Brokers) > 0
}

func (cfg Config) validateProducer() error {
	if len(cfg.Brokers) == 0 {
		return errors.New("mq: at least one broker must be configured")
	}
	if cfg.Topic == "" {
		return errors.New("mq: topic must be provided")
	}
	return nil
}

func (cfg Config) validateConsumer() error {
	if err := cfg.validateProducer(); err != nil {
		return err
	}
	if cfg.GroupID == "" {
		return errors.New("mq: group id must be provided")
	}
	return nil
}

func (cfg Config) normalize() Config {
	out := cfg
	out.Topic = strings.TrimSpace(out.Topic)
	out.GroupID = strings.TrimSpace(out.GroupID)
	out.ClientID = strings.TrimSpace(out.ClientID)
	if out.BatchTimeout <= 0 {
		out.BatchTimeout = 10 * time.Millisecond
	}
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = 3
	}
	brokers := make([]string, 0, len(out.Brokers))
	for _, broker := range out.Brokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	out.Brokers = brokers
	return out
}

func (cfg Config) String() string {
	n := cfg.normalize()
	return fmt.Sprintf("mq.Config{brokers=%s, topic=%s, group=%s, client=%s}",
		strings.Join(n.Brokers, ","), n.Topic, n.GroupID, n.ClientID)
}
