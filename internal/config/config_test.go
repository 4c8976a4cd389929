package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("DB_TYPE", "SQLite")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	LoadConfig()

	assert.Equal(t, "sqlite", DbType)
	assert.Empty(t, KafkaBrokers)
	assert.Equal(t, 24*time.Hour, TokenTTL)
	assert.Equal(t, "Les Constructions Dominic Cyr", MailSenderName)
}

func TestGetList(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, getList("KAFKA_BROKERS", ""))
}

func TestGetIntFallback(t *testing.T) {
	t.Setenv("AUDIT_RETENTION_DAYS", "abc")
	assert.Equal(t, 90, getInt("AUDIT_RETENTION_DAYS", 90))

	t.Setenv("AUDIT_RETENTION_DAYS", "30")
	assert.Equal(t, 30, getInt("AUDIT_RETENTION_DAYS", 90))
}
