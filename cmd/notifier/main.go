package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/config/db"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/mailer"
	"github.com/linskybing/formflow/pkg/mq"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize database connection
	db.Init()

	var m mailer.Mailer = mailer.LogMailer{}
	if config.BrevoAPIKey != "" {
		m = mailer.NewBrevoMailer(config.BrevoAPIKey, config.BrevoAPIURL, config.MailFrom, config.MailSenderName)
	} else {
		slog.Warn("BREVO_API_KEY not set, emails are only logged")
	}

	repos := repository.NewRepositories(db.DB)
	notifications := application.NewNotificationService(repos, m)

	consumer, err := mq.NewConsumer(mq.Config{
		Brokers:  config.KafkaBrokers,
		Topic:    config.KafkaTopic,
		GroupID:  config.KafkaGroupID,
		ClientID: config.KafkaClientID,
	}, application.EventHandler(notifications))
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}
	defer func() { _ = consumer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan
		slog.Info("Shutdown signal")
		cancel()
	}()

	slog.Info("Starting notification worker", "topic", config.KafkaTopic, "group", config.KafkaGroupID)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}
}
