// Package testutil holds the database and event fixtures shared by the
// repository, service and handler tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/m3shovon/Event-SaaS-Platform/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestDB opens a private in-memory SQLite database holding the full
// schema. The pool is pinned to one connection: every new connection to
// ":memory:" would see an empty database, and a single connection also makes
// transactions serialise the way row locks do on PostgreSQL.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "migrate test schema")
	return db
}

// MockDB is GORM on the postgres dialect over go-sqlmock, for asserting the
// exact SQL a repository emits (locking clauses, ownership joins). Pings are
// monitored, so a test that pings must queue ExpectPing.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB returns a MockDB; callers defer Close
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err, "create sqlmock")

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn, DriverName: "postgres"}),
		&gorm.Config{
			SkipDefaultTransaction: true,
			DisableAutomaticPing:   true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
	require.NoError(t, err, "open gorm on sqlmock")

	return &MockDB{DB: db, Mock: mock, SqlDB: conn}
}

func (m *MockDB) Close() error { return m.SqlDB.Close() }

// ExpectationsWereMet fails the test when a queued query never ran
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "unmet sql expectations")
}
