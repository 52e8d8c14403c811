//go:build integration

// Package testdb connects integration tests to a real PostgreSQL database.
//
// Each test runs inside its own transaction, which is rolled back when the
// test finishes, so tests can run in parallel against one schema:
//
//	func TestProfileStore_Integration(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        profiles := postgres.NewPostgresProfileStore(tx, nil)
//	        ...
//	    })
//	}
//
// Tests are skipped when no database URL is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/ziwei-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// Timeout bounds connection checks and migrations.
const Timeout = 30 * time.Second

var migrateOnce struct {
	sync.Once
	err error
}

// DatabaseURL returns ZIWEI_TEST_DB_URL, falling back to DATABASE_URL.
func DatabaseURL() string {
	if url := os.Getenv("ZIWEI_TEST_DB_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// Open returns a migrated database connection that is closed when the test
// ends. The test is skipped when DatabaseURL is empty.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("ZIWEI_TEST_DB_URL or DATABASE_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open database connection")
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database ping failed")
	require.NoError(t, migrate(ctx, db), "failed to migrate test database")
	return db
}

// migrate brings the schema up to date once per test binary.
func migrate(ctx context.Context, db *sql.DB) error {
	migrateOnce.Do(func() {
		goose.SetBaseFS(postgres.Migrations)
		goose.SetLogger(goose.NopLogger())
		if err := goose.SetDialect("postgres"); err != nil {
			migrateOnce.err = err
			return
		}
		if err := goose.UpContext(ctx, db, postgres.MigrationsDir); err != nil {
			migrateOnce.err = fmt.Errorf("goose up: %w", err)
		}
	})
	return migrateOnce.err
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// UniqueEmail returns an address that cannot collide across parallel tests.
func UniqueEmail(t *testing.T) string {
	name := strings.NewReplacer("/", "-", " ", "-").Replace(strings.ToLower(t.Name()))
	return fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano())
}
