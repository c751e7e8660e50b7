// Package testdb holds helpers for integration tests that talk to a real
// PostgreSQL or Redis instance. Every helper skips the calling test when the
// corresponding URL is not configured, so `go test -tags=integration ./...`
// is safe to run without any backing services.
//
// Recognised variables, first match wins:
//
//	SCRY_TEST_DB_URL, DATABASE_URL, SCRY_DATABASE_URL
//	SCRY_TEST_REDIS_URL, REDIS_URL, SCRY_EXTRACT_REDIS_URL
package testdb
