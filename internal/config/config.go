package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JwtSecret  string
	Issuer     string
	TokenTTL   time.Duration
	ServerPort string
	IsProduction bool

	DbType     string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbMaxConns int
	DbLogLevel string

	KafkaBrokers  []string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaClientID string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	BrevoAPIKey    string
	BrevoAPIURL    string
	MailFrom       string
	MailSenderName string

	FormCatalogPath    string
	AuditRetentionDays int
	AllowedOrigins     []string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	Issuer = getEnv("ISSUER", "formflow")
	TokenTTL = getDuration("TOKEN_TTL", 24*time.Hour)
	ServerPort = getEnv("SERVER_PORT", "8080")
	IsProduction = getEnv("GIN_MODE", "debug") == "release"

	DbType = strings.ToLower(getEnv("DB_TYPE", "postgres"))
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formflow")
	DbMaxConns = getInt("DB_MAX_CONNS", 20)
	DbLogLevel = getEnv("DB_LOG_LEVEL", "warn")

	KafkaBrokers = getList("KAFKA_BROKERS", "")
	KafkaTopic = getEnv("KAFKA_TOPIC", "form-notifications")
	KafkaGroupID = getEnv("KAFKA_GROUP_ID", "formflow-notifier")
	KafkaClientID = getEnv("KAFKA_CLIENT_ID", "formflow")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio123")
	MinioBucket = getEnv("MINIO_BUCKET", "form-archives")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	BrevoAPIKey = getEnv("BREVO_API_KEY", "")
	BrevoAPIURL = getEnv("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email")
	MailFrom = getEnv("MAIL_FROM", "no-reply@formflow.local")
	MailSenderName = getEnv("MAIL_SENDER_NAME", "Les Constructions Dominic Cyr")

	FormCatalogPath = getEnv("FORM_CATALOG_PATH", "")
	AuditRetentionDays = getInt("AUDIT_RETENTION_DAYS", 90)
	AllowedOrigins = getList("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}

func getList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
