package litepack

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// OptionCount is the number of choices offered by every quiz item.
const OptionCount = 4

// QuizItem is a multiple-choice cloze question.
type QuizItem struct {
	Question string              `json:"q"`
	Options  [OptionCount]string `json:"options"`
	// CorrectLetter is the option letter, A through D.
	CorrectLetter string `json:"answer"`
	CorrectIndex  int    `json:"correct_index"`
	// Answer is the keyword hidden in the question.
	Answer      string `json:"term"`
	SourceIndex int    `json:"-"`
}

// MakeQuiz builds up to maxN multiple-choice items. Sentence selection mirrors
// MakeFlashcards. Each item draws three distractors from the keywords plus
// the lexicon's generic terms and shuffles the four options using rng. A nil
// rng falls back to the global math/rand/v2 source.
func MakeQuiz(sentences []Sentence, keywords []string, lang Language, maxN int, rng *rand.Rand) []QuizItem {
	items := []QuizItem{}
	if len(sentences) == 0 || maxN <= 0 {
		return items
	}
	lx := LexiconFor(lang)
	pool := distractorPool(keywords, lx.GenericTerms)
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	used := make(map[int]struct{})
	for _, kw := range keywords {
		if len(items) >= maxN {
			break
		}
		kw = strings.ToLower(kw)
		s, ok := firstSentenceWith(sentences, kw)
		if !ok {
			continue
		}
		if _, taken := used[s.Index]; taken {
			continue
		}
		distractors := sampleDistractors(pool, kw, OptionCount-1, intN)
		if len(distractors) < OptionCount-1 {
			continue
		}
		used[s.Index] = struct{}{}

		var opts [OptionCount]string
		opts[0] = kw
		copy(opts[1:], distractors)
		for i := len(opts) - 1; i > 0; i-- {
			j := intN(i + 1)
			opts[i], opts[j] = opts[j], opts[i]
		}
		correct := 0
		for i, o := range opts {
			if o == kw {
				correct = i
				break
			}
		}

		items = append(items, QuizItem{
			Question:      fmt.Sprintf(lx.Prompts.Quiz, clozeText(s.Text, kw)),
			Options:       opts,
			CorrectLetter: string(rune('A' + correct)),
			CorrectIndex:  correct,
			Answer:        kw,
			SourceIndex:   s.Index,
		})
	}
	return items
}

func distractorPool(keywords, generic []string) []string {
	seen := make(map[string]struct{}, len(keywords)+len(generic))
	pool := make([]string, 0, len(keywords)+len(generic))
	for _, list := range [][]string{keywords, generic} {
		for _, t := range list {
			t = strings.ToLower(t)
			if _, dup := seen[t]; dup || t == "" {
				continue
			}
			seen[t] = struct{}{}
			pool = append(pool, t)
		}
	}
	return pool
}

// sampleDistractors picks n distinct pool entries other than answer using a
// partial Fisher-Yates shuffle over a copy of the candidates.
func sampleDistractors(pool []string, answer string, n int, intN func(int) int) []string {
	cands := make([]string, 0, len(pool))
	for _, t := range pool {
		if t != answer {
			cands = append(cands, t)
		}
	}
	if len(cands) < n {
		return cands
	}
	for i := 0; i < n; i++ {
		j := i + intN(len(cands)-i)
		cands[i], cands[j] = cands[j], cands[i]
	}
	return cands[:n]
}
