package litepack

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Sentence is one segment of the normalized text together with its position.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Normalize composes the text to NFC and collapses every run of Unicode
// whitespace, non-breaking spaces included, into a single ASCII space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}

// Segment splits normalized text into sentences. A boundary is a '.', '!'
// or '?' followed by whitespace and then an uppercase letter or a digit.
// Whatever follows the last boundary is kept as the final sentence even when
// it has no terminal punctuation.
func Segment(text string) []Sentence {
	runes := []rune(text)
	var out []Sentence
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j == len(runes) {
			continue
		}
		if !unicode.IsUpper(runes[j]) && !unicode.IsDigit(runes[j]) {
			continue
		}
		out = appendSentence(out, string(runes[start:i+1]))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = appendSentence(out, string(runes[start:]))
	}
	return out
}

func appendSentence(out []Sentence, text string) []Sentence {
	text = strings.TrimSpace(text)
	if text == "" {
		return out
	}
	return append(out, Sentence{Index: len(out), Text: text})
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// wordSpans returns the rune offsets of every whole-word, case-insensitive
// occurrence of term in s. term must already be lowercase.
func wordSpans(s, term string) [][2]int {
	if term == "" {
		return nil
	}
	hay := []rune(s)
	lower := make([]rune, len(hay))
	for i, r := range hay {
		lower[i] = unicode.ToLower(r)
	}
	needle := []rune(term)
	var spans [][2]int
	for i := 0; i+len(needle) <= len(lower); i++ {
		if !hasPrefixAt(lower, needle, i) {
			continue
		}
		end := i + len(needle)
		if i > 0 && isWordRune(lower[i-1]) {
			continue
		}
		if end < len(lower) && isWordRune(lower[end]) {
			continue
		}
		spans = append(spans, [2]int{i, end})
		i = end - 1
	}
	return spans
}

func hasPrefixAt(s, prefix []rune, at int) bool {
	for k, r := range prefix {
		if s[at+k] != r {
			return false
		}
	}
	return true
}

// containsWord reports whether term occurs in s as a whole word.
func containsWord(s, term string) bool {
	return len(wordSpans(s, term)) > 0
}

// replaceWord substitutes every whole-word occurrence of term in s.
func replaceWord(s, term, repl string) string {
	spans := wordSpans(s, term)
	if len(spans) == 0 {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(string(runes[last:sp[0]]))
		b.WriteString(repl)
		last = sp[1]
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// truncate cuts s to at most n runes, ending in an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
