package telegram

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/scry-lite/internal/litepack"
)

// DefaultMinInputLength is the shortest /pack payload accepted.
const DefaultMinInputLength = 20

var packCommandRe = regexp.MustCompile(`(?i)^/pack(?:@\S+)?\s*`)

// PackGenerator builds a pack from text; *litepack.Generator satisfies it.
type PackGenerator interface {
	Generate(text string, lang litepack.Language) *litepack.LitePack
}

// BotConfig holds the reply settings.
type BotConfig struct {
	AppURL           string
	MaxMessageLength int
	MinInputLength   int
}

// Bot turns incoming chat messages into reply texts.
type Bot struct {
	cfg       BotConfig
	generator PackGenerator
}

// NewBot creates a Bot. Non-positive limits fall back to the defaults.
func NewBot(cfg BotConfig, generator PackGenerator) *Bot {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = DefaultMaxMessageLength
	}
	if cfg.MinInputLength <= 0 {
		cfg.MinInputLength = DefaultMinInputLength
	}
	return &Bot{cfg: cfg, generator: generator}
}

// Replies returns the messages to send back for in, in order.
func (b *Bot) Replies(in Incoming) []string {
	t := textsFor(in.Lang)

	switch {
	case strings.HasPrefix(in.Text, "/start"):
		return []string{t.Start}

	case strings.HasPrefix(in.Text, "/help"):
		msg := t.Help
		if b.cfg.AppURL != "" {
			msg += "\n" + fmt.Sprintf(t.HelpAppURL, b.cfg.AppURL)
		}
		return []string{msg}

	case strings.HasPrefix(in.Text, "/pack"):
		payload := strings.TrimSpace(packCommandRe.ReplaceAllString(in.Text, ""))
		if utf8.RuneCountInString(payload) < b.cfg.MinInputLength {
			return []string{fmt.Sprintf(t.PackTooShort, b.cfg.MinInputLength)}
		}
		pack := b.generator.Generate(payload, in.Lang)
		return FormatPack(pack, in.Lang, b.cfg.AppURL, b.cfg.MaxMessageLength)

	default:
		return []string{t.UnknownCommand}
	}
}
