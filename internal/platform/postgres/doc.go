// Package postgres implements the store interfaces on PostgreSQL through the
// pgx stdlib driver. It owns the schema migrations, which are embedded in the
// binary and applied with goose, and maps driver errors onto store errors.
package postgres
