package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/phrazzld/scry-lite/internal/redact"
)

// Extraction errors.
var (
	ErrInvalidURL     = errors.New("invalid or missing url")
	ErrFetchFailed    = errors.New("failed to fetch page")
	ErrNoReadableText = errors.New("could not extract readable text")
)

const (
	// DefaultMaxChars caps the extracted text.
	DefaultMaxChars = 5000
	// DefaultTimeout bounds one page fetch.
	DefaultTimeout = 15 * time.Second
	// MaxTitleLength caps the extracted title, in characters.
	MaxTitleLength = 160

	minReadableChars = 50
	minBlockChars    = 30
	goodEnoughChars  = 800
	maxBodyBytes     = 5 << 20
	acceptHeader     = "text/html,application/xhtml+xml"
)

var (
	schemeRe       = regexp.MustCompile(`(?i)^https?://`)
	manyNewlinesRe = regexp.MustCompile(`\n{3,}`)
	spaceNewlineRe = regexp.MustCompile(`\s+\n`)
	newlineSpaceRe = regexp.MustCompile(`\n\s+`)
)

const noiseSelector = "script, style, noscript, svg, canvas, form, nav, footer, header, aside, iframe, ads, .ads, .advert, .promo"

const blockSelector = "p, li, blockquote, pre, code, h1, h2, h3"

// candidateSelectors are tried in order; the node with the most text wins.
var candidateSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".content",
	".post-content",
	".entry-content",
	"#content",
	"#main",
	".article",
	".post",
	".story",
}

// Article is the readable content of a web page.
type Article struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Config controls fetching and trimming.
type Config struct {
	MaxChars  int
	Timeout   time.Duration
	UserAgent string
	// CacheTTL is how long cached articles live; zero disables caching.
	CacheTTL time.Duration
}

// Extractor fetches pages and pulls their main readable text.
type Extractor struct {
	client *http.Client
	cfg    Config
	cache  Cache
	logger *slog.Logger
}

// New creates an Extractor. cache may be nil. If logger is nil, a default
// logger will be used.
func New(cfg Config, cache Cache, logger *slog.Logger) *Extractor {
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = DefaultMaxChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		cache:  cache,
		logger: logger.With(slog.String("component", "extractor")),
	}
}

// Extract fetches url and returns its readable article text.
func (e *Extractor) Extract(ctx context.Context, url string) (*Article, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	url = strings.TrimSpace(url)
	if !schemeRe.MatchString(url) {
		return nil, ErrInvalidURL
	}

	if e.cache != nil && e.cfg.CacheTTL > 0 {
		cached, ok, err := e.cache.Get(ctx, url)
		if err != nil {
			log.Warn("extraction cache read failed", slog.String("error", redact.Error(err)))
		} else if ok {
			log.Debug("extraction cache hit", slog.String("url", url))
			return cached, nil
		}
	}

	body, err := e.fetch(ctx, url)
	if err != nil {
		log.Warn("page fetch failed", slog.String("url", url), slog.String("error", redact.Error(err)))
		return nil, err
	}
	defer func() { _ = body.Close() }()

	article, err := Parse(io.LimitReader(body, maxBodyBytes), e.cfg.MaxChars)
	if err != nil {
		return nil, err
	}
	article.URL = url

	if e.cache != nil && e.cfg.CacheTTL > 0 {
		if err := e.cache.Set(ctx, url, article, e.cfg.CacheTTL); err != nil {
			log.Warn("extraction cache write failed", slog.String("error", redact.Error(err)))
		}
	}

	log.Info("article extracted",
		slog.String("url", url),
		slog.Int("chars", utf8.RuneCountInString(article.Text)))
	return article, nil
}

func (e *Extractor) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if e.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", e.cfg.UserAgent)
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP status %d", ErrFetchFailed, resp.StatusCode)
	}
	return resp.Body, nil
}

// Parse reads an HTML document and returns its title and main text. Text is
// capped at maxChars characters. A page with fewer than 50 characters of
// text yields ErrNoReadableText.
func Parse(r io.Reader, maxChars int) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoReadableText, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(noiseSelector).Remove()

	text := strings.TrimSpace(collectReadableText(mainContainer(doc)))
	if utf8.RuneCountInString(text) < minReadableChars {
		return nil, ErrNoReadableText
	}

	text = manyNewlinesRe.ReplaceAllString(text, "\n\n")
	if maxChars > 0 {
		text = cutRunes(text, maxChars)
	}

	return &Article{
		Title: strings.TrimSpace(cutRunes(title, MaxTitleLength)),
		Text:  text,
	}, nil
}

// mainContainer picks the candidate with the most collapsed text, stopping
// early once one is long enough. It falls back to body, then the document.
func mainContainer(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestScore := 0

	for _, sel := range candidateSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			score := utf8.RuneCountInString(strings.Join(strings.Fields(s.Text()), " "))
			if score > bestScore {
				bestScore = score
				best = s
			}
		})
		if bestScore > goodEnoughChars {
			break
		}
	}

	if best != nil {
		return best
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return doc.Selection
}

// collectReadableText joins block-level text of at least 30 characters with
// blank lines. Blocks nested inside another block are skipped so list items
// holding paragraphs are not repeated.
func collectReadableText(container *goquery.Selection) string {
	var blocks []string
	container.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsUntilSelection(container).Filter(blockSelector).Length() > 0 {
			return
		}
		raw := cleanBlock(s.Text())
		if utf8.RuneCountInString(raw) >= minBlockChars {
			blocks = append(blocks, raw)
		}
	})

	if len(blocks) == 0 {
		return cleanBlock(container.Text())
	}
	return strings.Join(blocks, "\n\n")
}

func cleanBlock(s string) string {
	s = spaceNewlineRe.ReplaceAllString(s, "\n")
	s = newlineSpaceRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

func cutRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
