package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/api/routes"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/config/db"
	"github.com/linskybing/formflow/internal/cron"
	"github.com/linskybing/formflow/internal/domain/form"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/pkg/mailer"
	"github.com/linskybing/formflow/pkg/mq"
	"github.com/linskybing/formflow/pkg/observability"
	"github.com/linskybing/formflow/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/linskybing/formflow/docs"
)

// @title Formflow API
// @version 1.0
// @description Customer form lifecycle: assignment, submission history, reopen and completion.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and schema
	db.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog := form.NewCatalog(nil)
	if config.FormCatalogPath != "" {
		c, err := form.LoadCatalog(config.FormCatalogPath)
		if err != nil {
			log.Fatalf("Failed to load form catalog: %v", err)
		}
		catalog = c
	}

	var store storage.ObjectStore = storage.NewMemoryStore()
	if config.MinioEndpoint != "" {
		s, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  config.MinioEndpoint,
			AccessKey: config.MinioAccessKey,
			SecretKey: config.MinioSecretKey,
			Bucket:    config.MinioBucket,
			UseSSL:    config.MinioUseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		store = s
	} else {
		log.Println("MINIO_ENDPOINT not set, form archives are kept in memory")
	}

	var notifier application.Notifier
	mqCfg := mq.Config{
		Brokers:  config.KafkaBrokers,
		Topic:    config.KafkaTopic,
		ClientID: config.KafkaClientID,
	}
	if mqCfg.Enabled() {
		producer, err := mq.NewProducer(mqCfg)
		if err != nil {
			log.Fatalf("Failed to create kafka producer: %v", err)
		}
		defer func() { _ = producer.Close() }()
		notifier = application.NewQueueNotifier(producer)
	} else {
		log.Println("KAFKA_BROKERS not set, notifications are delivered in-process")
	}

	repos := repository.NewRepositories(db.DB)
	svc := application.New(repos, application.Deps{
		Catalog:  catalog,
		Store:    store,
		Mailer:   newMailer(),
		Notifier: notifier,
	})

	prometheus.MustRegister(observability.NewFormsByStatusCollector(svc.Form.CountByStatus))

	// Start background tasks
	cron.StartCleanupTask(ctx, svc.Audit, config.AuditRetentionDays)

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.RegisterRoutes(router, svc)

	srv := &http.Server{
		Addr:    ":" + config.ServerPort,
		Handler: router,
	}
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	// let in-flight archives and notifications finish before the producer closes
	svc.Form.Wait()
	if w, ok := svc.Notifier.(interface{ Wait() }); ok {
		w.Wait()
	}
}

func newMailer() mailer.Mailer {
	if config.BrevoAPIKey == "" {
		log.Println("BREVO_API_KEY not set, emails are only logged")
		return mailer.LogMailer{}
	}
	return mailer.NewBrevoMailer(config.BrevoAPIKey, config.BrevoAPIURL, config.MailFrom, config.MailSenderName)
}
