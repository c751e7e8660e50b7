package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresPackStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresPackStore(db, nil), mock
}

func samplePack(t *testing.T) *domain.StudyPack {
	t.Helper()
	pack := &litepack.LitePack{
		Summary:    []string{"Plants turn light into sugar."},
		Easy:       "Plants turn light into sugar.",
		Flashcards: []litepack.Flashcard{{Question: "Fill in: ____ turn light into sugar.", Answer: "plants"}},
		Quiz:       []litepack.QuizItem{},
	}
	sp, err := domain.NewStudyPack("Plants", litepack.English, "Plants turn light into sugar.", pack)
	require.NoError(t, err)
	return sp
}

func TestNewPostgresPackStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresPackStore(nil, nil) })
}

func TestPostgresPackStore_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStore(t)
		sp := samplePack(t)

		mock.ExpectExec("INSERT INTO study_packs").
			WithArgs(sp.ID, sp.Title, "en", sp.Input, sqlmock.AnyArg(), sp.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), sp))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid pack is not written", func(t *testing.T) {
		s, mock := newMockStore(t)
		sp := samplePack(t)
		sp.Pack = nil

		err := s.Create(context.Background(), sp)
		assert.ErrorIs(t, err, domain.ErrNilPackContent)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id maps to store error", func(t *testing.T) {
		s, mock := newMockStore(t)
		sp := samplePack(t)

		mock.ExpectExec("INSERT INTO study_packs").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err := s.Create(context.Background(), sp)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestPostgresPackStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()
		created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		content := `{"summary":["A."],"easy":"A.","flashcards":[{"q":"Q?","a":"A"}],"quiz":[]}`

		rows := sqlmock.NewRows([]string{"id", "title", "lang", "input", "pack", "created_at"}).
			AddRow(id.String(), "Notes", "pl", "Tekst.", []byte(content), created)
		mock.ExpectQuery("SELECT id, title, lang, input, pack, created_at").
			WithArgs(id).
			WillReturnRows(rows)

		sp, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, sp.ID)
		assert.Equal(t, "Notes", sp.Title)
		assert.Equal(t, litepack.Polish, sp.Lang)
		assert.Equal(t, created, sp.CreatedAt)
		require.NotNil(t, sp.Pack)
		assert.Equal(t, []string{"A."}, sp.Pack.Summary)
		require.Len(t, sp.Pack.Flashcards, 1)
		assert.Equal(t, "A", sp.Pack.Flashcards[0].Answer)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("FROM study_packs").WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrPackNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("corrupt pack json", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "title", "lang", "input", "pack", "created_at"}).
			AddRow(id.String(), "Notes", "en", "Text.", []byte(`{`), time.Now())
		mock.ExpectQuery("FROM study_packs").WillReturnRows(rows)

		_, err := s.GetByID(context.Background(), id)
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestPostgresPackStore_List(t *testing.T) {
	s, mock := newMockStore(t)
	newer, older := uuid.New(), uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "title", "lang", "created_at"}).
		AddRow(newer.String(), "Second", "en", now).
		AddRow(older.String(), "First", "pl", now.Add(-time.Hour))
	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").
		WithArgs(10).
		WillReturnRows(rows)

	list, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, litepack.Polish, list[1].Lang)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPackStore_ListEmpty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM study_packs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "lang", "created_at"}))

	list, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPostgresPackStore_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()
		mock.ExpectExec("DELETE FROM study_packs WHERE id").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), id))
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM study_packs WHERE id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrPackNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM study_packs WHERE id").
			WillReturnError(errors.New("connection reset"))

		err := s.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrDeleteFailed)
	})
}

func TestPostgresPackStore_DeleteAll(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM study_packs").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPostgresPackStore_PruneOldest(t *testing.T) {
	t.Run("removes beyond keep", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("OFFSET").
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := s.PruneOldest(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive keep is a no-op", func(t *testing.T) {
		s, mock := newMockStore(t)

		n, err := s.PruneOldest(context.Background(), 0)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresPackStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM study_packs").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	base := NewPostgresPackStore(db, nil)
	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := base.WithTx(tx).DeleteAll(ctx)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
