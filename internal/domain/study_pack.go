package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-lite/internal/litepack"
)

// DefaultPackTitle is used when a pack is saved without a title.
const DefaultPackTitle = "Lite Pack"

// MaxTitleLength bounds stored titles, in characters.
const MaxTitleLength = 160

// Common validation errors for StudyPack. Each wraps ErrValidation.
var (
	ErrEmptyPackID    = fmt.Errorf("%w: study pack ID cannot be empty", ErrValidation)
	ErrEmptyPackInput = fmt.Errorf("%w: study pack input cannot be empty", ErrValidation)
	ErrEmptyPackTitle = fmt.Errorf("%w: study pack title cannot be empty", ErrValidation)
	ErrNilPackContent = fmt.Errorf("%w: study pack content cannot be nil", ErrValidation)
)

// StudyPack is a generated LitePack stored together with the text it was
// generated from.
type StudyPack struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Lang      litepack.Language  `json:"lang"`
	Input     string             `json:"input"`
	Pack      *litepack.LitePack `json:"pack"`
	CreatedAt time.Time          `json:"created_at"`
}

// PackSummary is the listing view of a StudyPack.
type PackSummary struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Lang      litepack.Language `json:"lang"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewStudyPack creates a StudyPack with a fresh ID and creation time.
// An empty title becomes DefaultPackTitle; long titles are cut to
// MaxTitleLength characters.
func NewStudyPack(title string, lang litepack.Language, input string, pack *litepack.LitePack) (*StudyPack, error) {
	sp := &StudyPack{
		ID:        uuid.New(),
		Title:     NormalizeTitle(title),
		Lang:      lang,
		Input:     input,
		Pack:      pack,
		CreatedAt: time.Now().UTC(),
	}

	if err := sp.Validate(); err != nil {
		return nil, err
	}

	return sp, nil
}

// NormalizeTitle trims a title, applies the default and enforces the length
// limit.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultPackTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		title = strings.TrimSpace(string([]rune(title)[:MaxTitleLength]))
	}
	return title
}

// Validate checks if the StudyPack has valid data.
func (p *StudyPack) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPackID
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyPackTitle
	}

	if strings.TrimSpace(p.Input) == "" {
		return ErrEmptyPackInput
	}

	if _, err := litepack.ParseLanguage(string(p.Lang)); err != nil {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidLanguage, p.Lang)
	}

	if p.Pack == nil {
		return ErrNilPackContent
	}

	return nil
}
