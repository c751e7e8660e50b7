package litepack

import "strings"

const (
	// Blank replaces the answer inside a cloze sentence.
	Blank = "____"

	clozeMaxLength = 200
)

// Flashcard is a cloze question with its answer.
type Flashcard struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
	// SourceIndex is the sentence the card was cut from, -1 for the
	// fallback card.
	SourceIndex int `json:"-"`
}

// MakeFlashcards builds up to maxN cloze cards. Keywords are tried in ranked
// order; each one blanks the first sentence it appears in, unless an earlier
// keyword already claimed that sentence. When no keyword lands anywhere a
// single card pointing at the summary is returned so the list is never
// empty for non-empty input.
func MakeFlashcards(sentences []Sentence, keywords []string, lang Language, maxN int) []Flashcard {
	cards := []Flashcard{}
	if len(sentences) == 0 || maxN <= 0 {
		return cards
	}
	lx := LexiconFor(lang)

	used := make(map[int]struct{})
	for _, kw := range keywords {
		if len(cards) >= maxN {
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
		used[s.Index] = struct{}{}
		cards = append(cards, Flashcard{
			Question:    lx.Prompts.Cloze + clozeText(s.Text, kw),
			Answer:      kw,
			SourceIndex: s.Index,
		})
	}

	if len(cards) == 0 {
		cards = append(cards, Flashcard{
			Question:    lx.Prompts.FallbackQuestion,
			Answer:      lx.Prompts.FallbackAnswer,
			SourceIndex: -1,
		})
	}
	return cards
}

func firstSentenceWith(sentences []Sentence, kw string) (Sentence, bool) {
	for _, s := range sentences {
		if containsWord(s.Text, kw) {
			return s, true
		}
	}
	return Sentence{}, false
}

func clozeText(sentence, kw string) string {
	return truncate(replaceWord(sentence, kw, Blank), clozeMaxLength)
}
