package litepack

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"
)

// LitePack is the study material generated from one text.
type LitePack struct {
	Summary    []string    `json:"summary"`
	Easy       string      `json:"easy"`
	Flashcards []Flashcard `json:"flashcards"`
	Quiz       []QuizItem  `json:"quiz"`
}

// Limits caps the size of each section of a pack.
type Limits struct {
	Summary         int
	Flashcards      int
	Quiz            int
	ScoringKeywords int
	// ClozeKeywords is how many of the top keywords feed flashcards and quiz.
	ClozeKeywords int
}

// DefaultLimits returns the standard pack sizes.
func DefaultLimits() Limits {
	return Limits{
		Summary:         5,
		Flashcards:      8,
		Quiz:            6,
		ScoringKeywords: 16,
		ClozeKeywords:   12,
	}
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes quiz shuffling deterministic. Every Generate call starts
// from the same seed, so equal input yields equal output.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		}
	}
}

// WithRandFactory sets the source of quiz randomness. The factory is called
// once per Generate call and must return a fresh *rand.Rand.
func WithRandFactory(f func() *rand.Rand) Option {
	return func(g *Generator) {
		if f != nil {
			g.newRand = f
		}
	}
}

// WithLimits overrides the section sizes. Non-positive fields keep their
// defaults.
func WithLimits(l Limits) Option {
	return func(g *Generator) {
		def := g.limits
		g.limits = Limits{
			Summary:         orDefault(l.Summary, def.Summary),
			Flashcards:      orDefault(l.Flashcards, def.Flashcards),
			Quiz:            orDefault(l.Quiz, def.Quiz),
			ScoringKeywords: orDefault(l.ScoringKeywords, def.ScoringKeywords),
			ClozeKeywords:   orDefault(l.ClozeKeywords, def.ClozeKeywords),
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Generator turns text into a LitePack. It holds no per-call state and is
// safe for concurrent use.
type Generator struct {
	limits  Limits
	newRand func() *rand.Rand
	logger  *slog.Logger
}

// NewGenerator creates a Generator. Without options quiz order is seeded from
// the clock.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		limits: DefaultLimits(),
		newRand: func() *rand.Rand {
			now := uint64(time.Now().UnixNano())
			return rand.New(rand.NewPCG(now, rand.Uint64()))
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Limits returns the generator's section sizes.
func (g *Generator) Limits() Limits {
	return g.limits
}

// Generate runs the pipeline. Empty or unsegmentable input produces an empty
// pack with non-nil sections; it never fails.
func (g *Generator) Generate(text string, lang Language) *LitePack {
	normalized := Normalize(text)
	sentences := Segment(normalized)
	keywords := Tokens(ExtractKeywords(normalized, lang, g.limits.ScoringKeywords))
	cloze := keywords
	if len(cloze) > g.limits.ClozeKeywords {
		cloze = cloze[:g.limits.ClozeKeywords]
	}
	rng := g.newRand()

	pack := &LitePack{}
	var eg errgroup.Group
	eg.Go(func() error {
		pack.Summary = SelectKeyPoints(sentences, keywords, lang, g.limits.Summary)
		return nil
	})
	eg.Go(func() error {
		pack.Easy = ToEasy(sentences, lang)
		return nil
	})
	eg.Go(func() error {
		pack.Flashcards = MakeFlashcards(sentences, cloze, lang, g.limits.Flashcards)
		return nil
	})
	eg.Go(func() error {
		pack.Quiz = MakeQuiz(sentences, cloze, lang, g.limits.Quiz, rng)
		return nil
	})
	_ = eg.Wait()

	g.logger.Debug("generated lite pack",
		slog.String("lang", string(lang)),
		slog.Int("sentences", len(sentences)),
		slog.Int("keywords", len(keywords)),
		slog.Int("summary", len(pack.Summary)),
		slog.Int("flashcards", len(pack.Flashcards)),
		slog.Int("quiz", len(pack.Quiz)))
	return pack
}

var defaultGenerator = NewGenerator()

// GenerateLitePack runs the pipeline with default limits and a clock-seeded
// quiz.
func GenerateLitePack(text string, lang Language) *LitePack {
	return defaultGenerator.Generate(text, lang)
}
