//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/linskybing/formflow/internal/migrations"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupPostgresForIntegration starts a disposable postgres (or uses TEST_DB_DSN)
// and returns a migrated gorm handle plus its cleanup.
func SetupPostgresForIntegration() (*gorm.DB, func()) {
	ctx := context.Background()
	terminate := func() {}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		req := testcontainers.ContainerRequest{
			Image: "postgres:15",
			Env: map[string]string{
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_USER":     "test",
				"POSTGRES_DB":       "formflow",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		}

		pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			log.Fatal(err)
		}
		terminate = func() { _ = pg.Terminate(ctx) }

		host, err := pg.Host(ctx)
		if err != nil {
			log.Fatal(err)
		}
		port, err := pg.MappedPort(ctx, "5432")
		if err != nil {
			log.Fatal(err)
		}
		dsn = fmt.Sprintf("postgres://test:test@%s:%s/formflow?sslmode=disable", host, port.Port())
	}

	// retry db connect
	var sqlDB *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		sqlDB, err = sql.Open("postgres", dsn)
		if err == nil {
			err = sqlDB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		terminate()
		log.Fatal(err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: quietLogger()})
	if err != nil {
		terminate()
		log.Fatal(err)
	}
	if err := migrations.Run(gormDB); err != nil {
		terminate()
		log.Fatal(err)
	}

	return gormDB, func() {
		_ = sqlDB.Close()
		terminate()
	}
}
