package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-lite/internal/domain"
)

// PackStore defines the interface for study pack persistence.
type PackStore interface {
	// Create saves a new study pack.
	// Returns validation errors from the domain StudyPack if data is invalid.
	Create(ctx context.Context, pack *domain.StudyPack) error

	// GetByID retrieves a study pack by its unique ID.
	// Returns ErrPackNotFound if the pack does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPack, error)

	// List returns at most limit pack summaries, newest first.
	List(ctx context.Context, limit int) ([]domain.PackSummary, error)

	// Delete removes a study pack.
	// Returns ErrPackNotFound if the pack does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every study pack and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// PruneOldest deletes all but the keep most recent packs and returns how
	// many were removed.
	PruneOldest(ctx context.Context, keep int) (int64, error)

	// WithTx returns a new PackStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) PackStore
}
