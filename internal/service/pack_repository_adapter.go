package service

import (
	"database/sql"

	"github.com/phrazzld/scry-lite/internal/store"
)

// PackRepositoryAdapter adapts a store.PackStore to PackRepository by pairing
// it with the database handle used to open transactions.
type PackRepositoryAdapter struct {
	store.PackStore
	db *sql.DB
}

// NewPackRepositoryAdapter creates a new adapter that implements PackRepository
// by delegating to a store.PackStore implementation
func NewPackRepositoryAdapter(packStore store.PackStore, db *sql.DB) *PackRepositoryAdapter {
	return &PackRepositoryAdapter{
		PackStore: packStore,
		db:        db,
	}
}

// WithTx returns an adapter bound to tx.
func (a *PackRepositoryAdapter) WithTx(tx *sql.Tx) PackRepository {
	return &PackRepositoryAdapter{
		PackStore: a.PackStore.WithTx(tx),
		db:        a.db,
	}
}

// DB returns the underlying database connection.
func (a *PackRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Verify that PackRepositoryAdapter implements service.PackRepository
var _ PackRepository = (*PackRepositoryAdapter)(nil)
