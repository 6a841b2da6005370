// Package integration runs the persistence layer and billing workflow against
// a real PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is the migrated database shared by every test in the package
type TestDB struct {
	DB        *gorm.DB
	Container testcontainers.Container
}

var (
	pgOnce sync.Once
	pg     *TestDB
	pgErr  error
)

// NewTestDB returns the package database with every table but the seeded
// plan catalogue emptied. The container starts on first use and lives until
// Terminate.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pgOnce.Do(func() { pg, pgErr = startPostgres(context.Background()) })
	require.NoError(t, pgErr, "start postgres")

	require.NoError(t, pg.truncate(), "reset tables")
	return pg
}

// Terminate stops the shared container if a test started it
func Terminate() {
	if pg == nil {
		return
	}
	if err := pg.Container.Terminate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "terminate postgres: %v\n", err)
	}
}

func startPostgres(ctx context.Context) (*TestDB, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("event_saas_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	level := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = logger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Room for concurrent reviewers to queue on the same row lock
	sqlDB.SetMaxOpenConns(10)

	source, err := migrationsURL()
	if err != nil {
		return nil, err
	}
	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	if err != nil {
		return nil, err
	}
	mg, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return nil, err
	}
	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("migrate up: %w", err)
	}

	return &TestDB{DB: db, Container: container}, nil
}

// truncate empties every application table except the plan catalogue,
// which the seed migration owns
func (tdb *TestDB) truncate() error {
	var tables []string
	if err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename NOT IN ('schema_migrations', 'subscription_plans')
	`).Scan(&tables).Error; err != nil {
		return err
	}
	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)).Error; err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// migrationsURL locates the repository's migrations directory from this file
func migrationsURL() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("cannot resolve caller")
	}
	for dir := filepath.Dir(file); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return "file://" + candidate, nil
		}
	}
	return "", errors.New("migrations directory not found")
}
