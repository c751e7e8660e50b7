package litepack

import (
	"sort"
	"strings"
)

// minKeywordLength approximates "content word" without POS tagging.
const minKeywordLength = 5

// Keyword is a lowercase token and the number of times it occurs.
type Keyword struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// ExtractKeywords returns the limit most frequent content tokens of text.
// Tokens are runs of the lexicon's letters and hyphens; anything shorter than
// five characters or listed as a stop word is dropped. Ties on count go to
// the longer token, then to the one seen first.
func ExtractKeywords(text string, lang Language, limit int) []Keyword {
	if limit <= 0 {
		return nil
	}
	lx := LexiconFor(lang)

	counts := make(map[string]int)
	var order []string
	for _, tok := range tokenize(strings.ToLower(text), lx, true) {
		tok = strings.Trim(tok, "-")
		if runeLen(tok) < minKeywordLength || lx.IsStopWord(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	ranked := make([]Keyword, len(order))
	for i, tok := range order {
		ranked[i] = Keyword{Token: tok, Count: counts[tok]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return runeLen(ranked[i].Token) > runeLen(ranked[j].Token)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Tokens returns the bare token strings of keywords, in order.
func Tokens(keywords []Keyword) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.Token
	}
	return out
}

// tokenize splits s into runs of word characters. Hyphens join words only
// when withHyphen is set.
func tokenize(s string, lx *Lexicon, withHyphen bool) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		if withHyphen && r == '-' {
			return false
		}
		return !lx.isLetter(r)
	})
}

// contentTokens is the token set used for near-duplicate detection: letters
// only, stop words and tokens under four characters removed.
func contentTokens(s string, lx *Lexicon) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range tokenize(strings.ToLower(s), lx, false) {
		if runeLen(tok) < 4 || lx.IsStopWord(tok) {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|. Two empty sets are identical.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
