package litepack

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	easyMinSentences = 2
	easyMaxSentences = 5
)

var easyPunctRe = regexp.MustCompile(`\s*[;:—–]\s*`)

// ToEasy rewrites the opening sentences into plainer text. It keeps between
// two and five sentences, drops parenthetical asides, flattens semicolons,
// colons and dashes into commas and swaps formal connectives for simpler
// ones. It is a surface rewrite only; reading level is not measured.
func ToEasy(sentences []Sentence, lang Language) string {
	n := len(sentences)
	if n == 0 {
		return ""
	}
	want := min(max(n, easyMinSentences), easyMaxSentences)
	n = min(n, want)

	lx := LexiconFor(lang)
	parts := make([]string, 0, n)
	for _, s := range sentences[:n] {
		t := parentheticalRe.ReplaceAllString(s.Text, "")
		t = easyPunctRe.ReplaceAllString(t, ", ")
		t = repeatedCommaRe.ReplaceAllString(t, ", ")
		for _, c := range lx.Connectives {
			t = replaceConnective(t, c)
		}
		t = multiSpaceRe.ReplaceAllString(t, " ")
		t = spaceBeforeRe.ReplaceAllString(t, "$1")
		t = strings.TrimSpace(t)
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// replaceConnective keeps a leading capital when the replaced phrase opened
// with one.
func replaceConnective(s string, c Replacement) string {
	spans := wordSpans(s, strings.ToLower(c.From))
	if len(spans) == 0 {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(string(runes[last:sp[0]]))
		if unicode.IsUpper(runes[sp[0]]) {
			b.WriteString(capitalize(c.To))
		} else {
			b.WriteString(c.To)
		}
		last = sp[1]
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}
