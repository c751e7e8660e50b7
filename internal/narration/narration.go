// Package narration prepares easy-language text for speech playback. Speech
// engines cut long utterances short, so text is split into sentence-aligned
// chunks of bounded length.
package narration

import (
	"regexp"
	"strings"

	"github.com/phrazzld/scry-lite/internal/litepack"
)

// DefaultMaxChunkLength is the chunk size used when none is given.
const DefaultMaxChunkLength = 180

var sentencePieceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Plan is everything a client needs to read a pack aloud.
type Plan struct {
	Lang   litepack.Language `json:"lang"`
	Locale string            `json:"locale"`
	Chunks []string          `json:"chunks"`
}

// NewPlan chunks text for lang. A non-positive maxLen uses
// DefaultMaxChunkLength.
func NewPlan(text string, lang litepack.Language, maxLen int) Plan {
	return Plan{
		Lang:   lang,
		Locale: Locale(lang),
		Chunks: Chunk(text, maxLen),
	}
}

// Locale returns the speech locale for a language; anything other than
// Polish reads as US English.
func Locale(lang litepack.Language) string {
	if lang == litepack.Polish {
		return "pl-PL"
	}
	return "en-US"
}

// Chunk collapses whitespace, splits text into sentence pieces and packs them
// greedily into chunks of at most maxLen characters. A sentence longer than
// maxLen is split hard at maxLen.
func Chunk(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxChunkLength
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return []string{}
	}

	pieces := sentencePieceRe.FindAllString(text, -1)
	if len(pieces) == 0 {
		pieces = []string{text}
	}

	chunks := []string{}
	var buf []rune
	for _, p := range pieces {
		s := []rune(strings.TrimSpace(p))
		if len(s) == 0 {
			continue
		}

		candidate := s
		if len(buf) > 0 {
			candidate = append(append(append([]rune{}, buf...), ' '), s...)
		}
		if len(candidate) <= maxLen {
			buf = candidate
			continue
		}

		if len(buf) > 0 {
			chunks = append(chunks, string(buf))
		}
		for len(s) > maxLen {
			chunks = append(chunks, string(s[:maxLen]))
			s = s[maxLen:]
		}
		buf = s
	}
	if len(buf) > 0 {
		chunks = append(chunks, string(buf))
	}
	return chunks
}
