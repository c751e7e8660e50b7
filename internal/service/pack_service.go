package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/export"
	"github.com/phrazzld/scry-lite/internal/extract"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/narration"
	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/phrazzld/scry-lite/internal/store"
)

// PackRepository defines the repository interface for the service layer
// This is aligned with store.PackStore plus access to the database handle
type PackRepository interface {
	Create(ctx context.Context, pack *domain.StudyPack) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyPack, error)
	List(ctx context.Context, limit int) ([]domain.PackSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	PruneOldest(ctx context.Context, keep int) (int64, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) PackRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// ArticleExtractor fetches readable text from a URL.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (*extract.Article, error)
}

// PackExporter renders a pack as a document; *export.PDFRenderer satisfies it.
type PackExporter interface {
	Render(w io.Writer, title string, lang litepack.Language, pack *litepack.LitePack) error
}

// PackGenerator builds a pack from text; *litepack.Generator satisfies it.
type PackGenerator interface {
	Generate(text string, lang litepack.Language) *litepack.LitePack
}

// GenerateRequest asks for a pack from raw text.
type GenerateRequest struct {
	Text  string
	Lang  litepack.Language
	Title string
	Save  bool
}

// URLRequest asks for a pack from the article at URL.
type URLRequest struct {
	URL  string
	Lang litepack.Language
	Save bool
}

// GenerateResult is a generated pack and whether it was stored.
type GenerateResult struct {
	StudyPack *domain.StudyPack
	Saved     bool
}

// Document is a rendered export of a stored pack.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PackService provides study pack operations
type PackService interface {
	// Generate builds a pack from text and stores it when requested
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// FromURL extracts an article and builds a pack titled after it
	FromURL(ctx context.Context, req URLRequest) (*GenerateResult, error)

	// Extract returns the readable article at url without generating a pack
	Extract(ctx context.Context, url string) (*extract.Article, error)

	// List returns stored pack summaries, newest first
	List(ctx context.Context) ([]domain.PackSummary, error)

	// Get returns one stored pack
	Get(ctx context.Context, id uuid.UUID) (*domain.StudyPack, error)

	// Delete removes one stored pack
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every stored pack
	DeleteAll(ctx context.Context) (int64, error)

	// Narration returns the speech plan for a stored pack's easy text
	Narration(ctx context.Context, id uuid.UUID) (*narration.Plan, error)

	// ExportPDF renders a stored pack as a printable document
	ExportPDF(ctx context.Context, id uuid.UUID) (*Document, error)
}

// PackServiceConfig holds the pack rules.
type PackServiceConfig struct {
	MinInputLength int
	RetentionCount int
	DefaultTitle   string
}

type packServiceImpl struct {
	repo      PackRepository
	generator PackGenerator
	extractor ArticleExtractor
	exporter  PackExporter
	cfg       PackServiceConfig
	logger    *slog.Logger
}

// NewPackService creates a new PackService
// It returns an error if any of the required dependencies are nil.
func NewPackService(
	repo PackRepository,
	generator PackGenerator,
	extractor ArticleExtractor,
	exporter PackExporter,
	cfg PackServiceConfig,
	logger *slog.Logger,
) (PackService, error) {
	if repo == nil {
		return nil, &PackServiceError{Operation: "create_service", Message: "repo cannot be nil"}
	}
	if generator == nil {
		return nil, &PackServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if extractor == nil {
		return nil, &PackServiceError{Operation: "create_service", Message: "extractor cannot be nil"}
	}
	if exporter == nil {
		return nil, &PackServiceError{Operation: "create_service", Message: "exporter cannot be nil"}
	}

	if cfg.MinInputLength < 1 {
		cfg.MinInputLength = 1
	}
	if cfg.RetentionCount < 1 {
		cfg.RetentionCount = 10
	}
	if strings.TrimSpace(cfg.DefaultTitle) == "" {
		cfg.DefaultTitle = domain.DefaultPackTitle
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &packServiceImpl{
		repo:      repo,
		generator: generator,
		extractor: extractor,
		exporter:  exporter,
		cfg:       cfg,
		logger:    logger.With("component", "pack_service"),
	}, nil
}

// Generate validates the input, builds the pack and, when req.Save is set,
// stores it and prunes older packs beyond the retention count in one
// transaction.
func (s *packServiceImpl) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text := strings.TrimSpace(req.Text)
	if n := utf8.RuneCountInString(text); n < s.cfg.MinInputLength {
		return nil, fmt.Errorf("%w: got %d characters, need at least %d", ErrInputTooShort, n, s.cfg.MinInputLength)
	}

	lang, err := resolveLanguage(req.Lang)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = s.cfg.DefaultTitle
	}

	pack := s.generator.Generate(text, lang)
	sp, err := domain.NewStudyPack(title, lang, text, pack)
	if err != nil {
		return nil, NewPackServiceError("generate_pack", "failed to create study pack", err)
	}

	log.Debug("pack generated",
		"lang", lang,
		"summary", len(pack.Summary),
		"flashcards", len(pack.Flashcards),
		"quiz", len(pack.Quiz))

	if !req.Save {
		return &GenerateResult{StudyPack: sp}, nil
	}

	if err := s.save(ctx, sp); err != nil {
		return nil, err
	}
	return &GenerateResult{StudyPack: sp, Saved: true}, nil
}

func (s *packServiceImpl) save(ctx context.Context, sp *domain.StudyPack) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var pruned int64
	err := store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Create(ctx, sp); err != nil {
			log.Error("failed to create pack in transaction",
				"error", err,
				"pack_id", sp.ID)
			return NewPackServiceError("save_pack", "failed to save pack to database", err)
		}

		n, err := txRepo.PruneOldest(ctx, s.cfg.RetentionCount)
		if err != nil {
			log.Error("failed to prune old packs",
				"error", err,
				"keep", s.cfg.RetentionCount)
			return NewPackServiceError("save_pack", "failed to prune old packs", err)
		}
		pruned = n
		return nil
	})
	if err != nil {
		var svcErr *PackServiceError
		if errors.As(err, &svcErr) {
			return err
		}
		return NewPackServiceError("save_pack", "transaction failed", err)
	}

	log.Info("pack saved",
		"pack_id", sp.ID,
		"pruned", pruned)
	return nil
}

// FromURL extracts the article and generates a pack from it. The article
// title becomes the pack title. The language is checked before anything is
// fetched.
func (s *packServiceImpl) FromURL(ctx context.Context, req URLRequest) (*GenerateResult, error) {
	lang, err := resolveLanguage(req.Lang)
	if err != nil {
		return nil, err
	}

	article, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	return s.Generate(ctx, GenerateRequest{
		Text:  article.Text,
		Lang:  lang,
		Title: article.Title,
		Save:  req.Save,
	})
}

// Extract returns the readable article at url.
func (s *packServiceImpl) Extract(ctx context.Context, url string) (*extract.Article, error) {
	return s.extractor.Extract(ctx, url)
}

// List returns at most the retention count of summaries, newest first.
func (s *packServiceImpl) List(ctx context.Context) ([]domain.PackSummary, error) {
	packs, err := s.repo.List(ctx, s.cfg.RetentionCount)
	if err != nil {
		s.logger.Error("failed to list packs", "error", err)
		return nil, NewPackServiceError("list_packs", "failed to list packs", err)
	}
	return packs, nil
}

// Get retrieves a stored pack by its ID
func (s *packServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.StudyPack, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPackNotFound) {
			return nil, ErrPackNotFound
		}
		s.logger.Error("failed to retrieve pack", "error", err, "pack_id", id)
		return nil, NewPackServiceError("get_pack", "failed to retrieve pack", err)
	}
	return sp, nil
}

// Delete removes a stored pack by its ID
func (s *packServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrPackNotFound) {
			return ErrPackNotFound
		}
		s.logger.Error("failed to delete pack", "error", err, "pack_id", id)
		return NewPackServiceError("delete_pack", "failed to delete pack", err)
	}
	return nil
}

// DeleteAll removes every stored pack
func (s *packServiceImpl) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("failed to delete packs", "error", err)
		return 0, NewPackServiceError("delete_all_packs", "failed to delete packs", err)
	}
	s.logger.Info("all packs deleted", "count", n)
	return n, nil
}

// Narration chunks the stored pack's easy text for speech.
func (s *packServiceImpl) Narration(ctx context.Context, id uuid.UUID) (*narration.Plan, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plan := narration.NewPlan(sp.Pack.Easy, sp.Lang, narration.DefaultMaxChunkLength)
	return &plan, nil
}

// ExportPDF renders a stored pack with its title as a PDF document.
func (s *packServiceImpl) ExportPDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.exporter.Render(&buf, sp.Title, sp.Lang, sp.Pack); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to render pack",
			"error", err,
			"pack_id", id)
		return nil, NewPackServiceError("export_pack", "failed to render pack", err)
	}

	return &Document{
		FileName:    export.FileName(sp.Title),
		ContentType: export.ContentType,
		Data:        buf.Bytes(),
	}, nil
}

// resolveLanguage defaults an empty language to English and rejects tags
// without a lexicon.
func resolveLanguage(lang litepack.Language) (litepack.Language, error) {
	if strings.TrimSpace(string(lang)) == "" {
		return litepack.English, nil
	}
	parsed, err := litepack.ParseLanguage(string(lang))
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidLanguage, lang)
	}
	return parsed, nil
}
