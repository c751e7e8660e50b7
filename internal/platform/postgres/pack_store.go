package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/phrazzld/scry-lite/internal/store"
)

// PostgresPackStore implements the store.PackStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPackStore creates a new PostgreSQL implementation of the PackStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPackStore(db store.DBTX, logger *slog.Logger) *PostgresPackStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPackStore{
		db:     db,
		logger: logger.With(slog.String("component", "pack_store")),
	}
}

// Ensure PostgresPackStore implements store.PackStore interface
var _ store.PackStore = (*PostgresPackStore)(nil)

// Create implements store.PackStore.Create.
// The generated pack is stored as JSONB; flashcard and quiz source indexes
// are not persisted.
func (s *PostgresPackStore) Create(ctx context.Context, pack *domain.StudyPack) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := pack.Validate(); err != nil {
		log.Warn("study pack validation failed during create",
			slog.String("error", err.Error()),
			slog.String("pack_id", pack.ID.String()))
		return err
	}

	content, err := json.Marshal(pack.Pack)
	if err != nil {
		return store.NewStoreError("study_pack", "create", "failed to encode pack", err)
	}

	query := `
		INSERT INTO study_packs (id, title, lang, input, pack, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		pack.ID,
		pack.Title,
		string(pack.Lang),
		pack.Input,
		content,
		pack.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create study pack",
			slog.String("error", err.Error()),
			slog.String("pack_id", pack.ID.String()))
		return MapError(err)
	}

	log.Info("study pack created",
		slog.String("pack_id", pack.ID.String()),
		slog.String("lang", string(pack.Lang)))
	return nil
}

// GetByID implements store.PackStore.GetByID.
// Returns store.ErrPackNotFound if the pack does not exist.
func (s *PostgresPackStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPack, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving study pack by ID", slog.String("pack_id", id.String()))

	query := `
		SELECT id, title, lang, input, pack, created_at
		FROM study_packs
		WHERE id = $1
	`

	var (
		sp      domain.StudyPack
		lang    string
		content []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sp.ID,
		&sp.Title,
		&lang,
		&sp.Input,
		&content,
		&sp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study pack not found", slog.String("pack_id", id.String()))
			return nil, store.ErrPackNotFound
		}
		log.Error("failed to get study pack by ID",
			slog.String("error", err.Error()),
			slog.String("pack_id", id.String()))
		return nil, err
	}

	sp.Lang = litepack.Language(lang)
	sp.Pack = &litepack.LitePack{}
	if err := json.Unmarshal(content, sp.Pack); err != nil {
		return nil, store.NewStoreError("study_pack", "get", "failed to decode pack", err)
	}

	return &sp, nil
}

// List implements store.PackStore.List.
func (s *PostgresPackStore) List(ctx context.Context, limit int) ([]domain.PackSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, lang, created_at
		FROM study_packs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to list study packs", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	summaries := []domain.PackSummary{}
	for rows.Next() {
		var (
			sum  domain.PackSummary
			lang string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &lang, &sum.CreatedAt); err != nil {
			log.Error("failed to scan study pack row", slog.String("error", err.Error()))
			return nil, err
		}
		sum.Lang = litepack.Language(lang)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating study pack rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed study packs", slog.Int("count", len(summaries)))
	return summaries, nil
}

// Delete implements store.PackStore.Delete.
// Returns store.ErrPackNotFound if the pack does not exist.
func (s *PostgresPackStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM study_packs WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete study pack",
			slog.String("error", err.Error()),
			slog.String("pack_id", id.String()))
		return fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	if err := CheckRowsAffected(result, store.ErrPackNotFound); err != nil {
		log.Debug("study pack not found for deletion", slog.String("pack_id", id.String()))
		return err
	}

	log.Info("study pack deleted", slog.String("pack_id", id.String()))
	return nil
}

// DeleteAll implements store.PackStore.DeleteAll.
func (s *PostgresPackStore) DeleteAll(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM study_packs`)
	if err != nil {
		log.Error("failed to delete study packs", slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("study packs deleted", slog.Int64("count", n))
	return n, nil
}

// PruneOldest implements store.PackStore.PruneOldest.
// A non-positive keep is a no-op.
func (s *PostgresPackStore) PruneOldest(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM study_packs
		WHERE id IN (
			SELECT id FROM study_packs
			ORDER BY created_at DESC, id DESC
			OFFSET $1
		)
	`
	result, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		log.Error("failed to prune study packs",
			slog.String("error", err.Error()),
			slog.Int("keep", keep))
		return 0, fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if n > 0 {
		log.Info("pruned old study packs", slog.Int64("count", n), slog.Int("keep", keep))
	}
	return n, nil
}

// WithTx implements store.PackStore.WithTx.
func (s *PostgresPackStore) WithTx(tx *sql.Tx) store.PackStore {
	return &PostgresPackStore{
		db:     tx,
		logger: s.logger,
	}
}
