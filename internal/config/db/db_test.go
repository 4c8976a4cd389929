package db

import (
	"testing"

	"github.com/linskybing/formflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	config.DbName = ":memory:"
	for _, dbType := range []string{"postgres", "postgresql", "mysql", "mariadb", "sqlite", "sqlserver", "mssql"} {
		d, err := Dialector(dbType)
		require.NoError(t, err, dbType)
		assert.NotNil(t, d, dbType)
	}

	_, err := Dialector("oracle")
	assert.EqualError(t, err, "unsupported database type: oracle")
}

func TestOpenSQLiteSingleConn(t *testing.T) {
	config.DbName = ":memory:"
	config.DbLogLevel = "silent"

	gormDB, err := Open("sqlite")
	require.NoError(t, err)
	InitWithGormDB(gormDB)
	assert.Same(t, gormDB, DB)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Error, LogLevel("ERROR"))
	assert.Equal(t, logger.Info, LogLevel("info"))
	assert.Equal(t, logger.Warn, LogLevel(""))
}
