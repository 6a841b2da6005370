package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/config"
	"github.com/m3shovon/Event-SaaS-Platform/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDatabase_ApplyPoolLimits(t *testing.T) {
	m := testutil.NewMockDB(t)
	defer m.Close()
	db := &Database{DB: m.DB}

	require.NoError(t, db.applyPoolLimits(&config.DatabaseConfig{
		MaxOpenConns:    12,
		MaxIdleConns:    4,
		ConnMaxLifetime: 60,
		ConnMaxIdleTime: 30,
	}))

	assert.Equal(t, 12, m.SqlDB.Stats().MaxOpenConnections)
}

func TestDatabase_Ping(t *testing.T) {
	m := testutil.NewMockDB(t)
	defer m.Close()
	db := &Database{DB: m.DB}

	m.Mock.ExpectPing()
	assert.NoError(t, db.Ping(context.Background()))

	m.Mock.ExpectPing().WillReturnError(errors.New("connection reset by peer"))
	assert.Error(t, db.Ping(context.Background()))

	m.ExpectationsWereMet(t)
}

func TestDatabase_Close(t *testing.T) {
	m := testutil.NewMockDB(t)
	db := &Database{DB: m.DB}

	m.Mock.ExpectClose()
	assert.NoError(t, db.Close())
	m.ExpectationsWereMet(t)
}

func TestWithLogger(t *testing.T) {
	l := logger.Default.LogMode(logger.Warn)
	cfg := &gorm.Config{}

	WithLogger(l)(cfg)

	assert.Same(t, l, cfg.Logger)
}
