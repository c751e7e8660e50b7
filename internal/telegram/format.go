package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/scry-lite/internal/litepack"
)

// DefaultMaxMessageLength keeps messages under the Bot API limit of 4096.
const DefaultMaxMessageLength = 3800

// FormatPack renders a pack as one or more chat messages of at most maxLen
// characters each. Messages break on line boundaries; a single line longer
// than maxLen is split hard.
func FormatPack(pack *litepack.LitePack, lang litepack.Language, appURL string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}
	if pack == nil {
		return []string{}
	}
	t := textsFor(lang)

	lines := []string{t.Header, ""}

	if len(pack.Summary) > 0 {
		lines = append(lines, t.Summary)
		for _, s := range pack.Summary {
			lines = append(lines, "• "+s)
		}
		lines = append(lines, "")
	}

	if pack.Easy != "" {
		lines = append(lines, t.Easy, pack.Easy, "")
	}

	if len(pack.Flashcards) > 0 {
		lines = append(lines, t.Flashcards)
		for i, c := range pack.Flashcards {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, c.Question), "   → "+c.Answer)
		}
		lines = append(lines, "")
	}

	if len(pack.Quiz) > 0 {
		lines = append(lines, t.Quiz)
		for i, q := range pack.Quiz {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, q.Question))
			for j, opt := range q.Options {
				lines = append(lines, fmt.Sprintf("   %c) %s", 'A'+j, opt))
			}
			lines = append(lines, "   "+fmt.Sprintf(t.Answer, q.CorrectLetter))
		}
		lines = append(lines, "")
	}

	if appURL != "" {
		lines = append(lines, fmt.Sprintf(t.FullApp, appURL))
	}

	return SplitMessage(strings.Join(lines, "\n"), maxLen)
}

// SplitMessage packs the lines of text into chunks of at most maxLen
// characters. Leading and trailing blank lines of each chunk are dropped.
func SplitMessage(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}

	var (
		out    []string
		buf    strings.Builder
		bufLen int
	)
	flush := func() {
		if msg := strings.Trim(buf.String(), "\n"); strings.TrimSpace(msg) != "" {
			out = append(out, msg)
		}
		buf.Reset()
		bufLen = 0
	}

	for _, line := range strings.Split(text, "\n") {
		for _, piece := range hardSplit(line, maxLen) {
			n := utf8.RuneCountInString(piece)
			sep := 0
			if bufLen > 0 {
				sep = 1
			}
			if bufLen+sep+n > maxLen {
				flush()
				sep = 0
			}
			if sep == 1 {
				buf.WriteByte('\n')
			}
			buf.WriteString(piece)
			bufLen += sep + n
		}
	}
	flush()

	if out == nil {
		return []string{}
	}
	return out
}

func hardSplit(line string, maxLen int) []string {
	runes := []rune(line)
	if len(runes) <= maxLen {
		return []string{line}
	}
	var parts []string
	for len(runes) > maxLen {
		parts = append(parts, string(runes[:maxLen]))
		runes = runes[maxLen:]
	}
	return append(parts, string(runes))
}
