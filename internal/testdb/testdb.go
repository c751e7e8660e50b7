//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

var (
	databaseURLVars = []string{"SCRY_TEST_DB_URL", "DATABASE_URL", "SCRY_DATABASE_URL"}
	redisURLVars    = []string{"SCRY_TEST_REDIS_URL", "REDIS_URL", "SCRY_EXTRACT_REDIS_URL"}
)

func firstEnv(names []string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	return firstEnv(databaseURLVars)
}

// GetTestRedisURL returns the configured test Redis URL, or "".
func GetTestRedisURL() string {
	return firstEnv(redisURLVars)
}

// DatabaseURL returns the test database URL or skips t.
func DatabaseURL(t *testing.T) string {
	t.Helper()
	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no test database configured; set DATABASE_URL")
	}
	return url
}

// RedisURL returns the test Redis URL or skips t.
func RedisURL(t *testing.T) string {
	t.Helper()
	url := GetTestRedisURL()
	if url == "" {
		t.Skip("no test redis configured; set REDIS_URL")
	}
	return url
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can modify the database without leaving anything behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			// ALLOW-PANIC
			panic(r)
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
