package litepack

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	// similarityThreshold marks two bullets as near-duplicates.
	similarityThreshold = 0.6
	bulletSoftLimit     = 80
	bulletHardLimit     = 180
)

var (
	parentheticalRe = regexp.MustCompile(`\(.*?\)`)
	innerPunctRe    = regexp.MustCompile(`\s*[,;:—–]\s*`)
	repeatedCommaRe = regexp.MustCompile(`(?:,\s*){2,}`)
	spaceBeforeRe   = regexp.MustCompile(`\s+([.,!?…])`)
	commaBeforeEnd  = regexp.MustCompile(`,\s*([.!?])`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
)

type scoredSentence struct {
	Sentence
	score float64
}

// SelectKeyPoints ranks sentences by ScoreSentence and returns up to maxN
// condensed bullets, skipping candidates whose content tokens overlap an
// accepted bullet with Jaccard similarity of 0.6 or more. Equal scores keep
// the earlier sentence first.
func SelectKeyPoints(sentences []Sentence, keywords []string, lang Language, maxN int) []string {
	if len(sentences) == 0 || maxN <= 0 {
		return []string{}
	}
	lx := LexiconFor(lang)

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		scored[i] = scoredSentence{Sentence: s, score: ScoreSentence(s.Text, s.Index, keywords, lang)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].Index < scored[j].Index
	})

	bullets := make([]string, 0, maxN)
	accepted := make([]map[string]struct{}, 0, maxN)
	for _, cand := range scored {
		bullet := CondenseBullet(cand.Text)
		tokens := contentTokens(bullet, lx)
		if isNearDuplicate(tokens, accepted) {
			continue
		}
		bullets = append(bullets, bullet)
		accepted = append(accepted, tokens)
		if len(bullets) >= maxN {
			break
		}
	}

	if len(bullets) == 0 {
		for _, s := range sentences {
			if len(bullets) >= maxN {
				break
			}
			bullets = append(bullets, CondenseBullet(s.Text))
		}
	}
	return bullets
}

func isNearDuplicate(tokens map[string]struct{}, accepted []map[string]struct{}) bool {
	for _, prev := range accepted {
		if Jaccard(tokens, prev) >= similarityThreshold {
			return true
		}
	}
	return false
}

// CondenseBullet turns a sentence into a display line: parenthetical asides
// are dropped, inner punctuation becomes commas, long lines are cut at the
// first comma or period followed by a space past 80 characters, the first letter is capitalized
// and the line always ends in terminal punctuation.
func CondenseBullet(s string) string {
	t := parentheticalRe.ReplaceAllString(s, "")
	t = innerPunctRe.ReplaceAllString(t, ", ")
	t = repeatedCommaRe.ReplaceAllString(t, ", ")
	t = multiSpaceRe.ReplaceAllString(t, " ")
	t = spaceBeforeRe.ReplaceAllString(t, "$1")
	t = commaBeforeEnd.ReplaceAllString(t, "$1")
	t = strings.Trim(t, " ,")

	if runeLen(t) > bulletSoftLimit {
		t = cutLong(t)
	}
	if t == "" {
		return t
	}

	t = capitalize(t)
	if !strings.HasSuffix(t, ".") && !strings.HasSuffix(t, "!") &&
		!strings.HasSuffix(t, "?") && !strings.HasSuffix(t, "…") {
		t += "."
	}
	return t
}

func cutLong(t string) string {
	runes := []rune(t)
	for i := bulletSoftLimit; i < len(runes)-1; i++ {
		if (runes[i] == ',' || runes[i] == '.') && unicode.IsSpace(runes[i+1]) {
			return strings.TrimSpace(string(runes[:i])) + "…"
		}
	}
	return truncate(t, bulletHardLimit)
}
