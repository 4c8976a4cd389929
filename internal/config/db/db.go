package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/migrations"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init() {
	gormDB, err := Open(config.DbType)
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := migrations.Run(gormDB); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	DB = gormDB
	log.Printf("Database (%s) connected and migrated", config.DbType)
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

// Dialector picks the gorm driver for dbType using the DB_* settings.
func Dialector(dbType string) (gorm.Dialector, error) {
	switch strings.ToLower(dbType) {
	case "postgres", "postgresql":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			config.DbHost,
			config.DbPort,
			config.DbUser,
			config.DbPassword,
			config.DbName,
		)
		return postgres.Open(dsn), nil
	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.DbUser,
			config.DbPassword,
			config.DbHost,
			config.DbPort,
			config.DbName,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		// DB_NAME is the file path, or ":memory:"
		return sqlite.Open(config.DbName), nil
	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DbUser,
			config.DbPassword,
			config.DbHost,
			config.DbPort,
			config.DbName,
		)
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

func Open(dbType string) (*gorm.DB, error) {
	dialector, err := Dialector(dbType)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(LogLevel(config.DbLogLevel)),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	maxConns := config.DbMaxConns
	if strings.ToLower(dbType) == "sqlite" {
		// sqlite allows a single writer
		maxConns = 1
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns((maxConns + 1) / 2)
	}
	return gormDB, nil
}

func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
