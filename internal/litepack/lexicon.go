package litepack

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language identifies one of the supported lexicons.
type Language string

// Supported languages.
const (
	English Language = "en"
	Polish  Language = "pl"
)

// ErrUnsupportedLanguage is returned by ParseLanguage for tags outside the
// closed set of lexicons.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Replacement rewrites a whole-word phrase into a simpler one.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Prompts holds the user-facing strings the generators emit.
type Prompts struct {
	// Cloze prefixes every flashcard question.
	Cloze string `yaml:"cloze"`
	// Quiz wraps the blanked sentence; it must contain exactly one %s.
	Quiz string `yaml:"quiz"`
	// FallbackQuestion and FallbackAnswer make up the placeholder card
	// emitted when no keyword matches any sentence.
	FallbackQuestion string `yaml:"fallback_question"`
	FallbackAnswer   string `yaml:"fallback_answer"`
}

// Lexicon is the per-language data the pipeline runs on. Lexicons are loaded
// from the embedded lexicons/*.yaml files, one file per language.
type Lexicon struct {
	Language Language `yaml:"language"`
	// Letters lists the non-ASCII letters that belong to the word class.
	Letters string `yaml:"letters"`
	// StopWordList holds lowercase function words ignored by keyword
	// extraction and similarity.
	StopWordList []string `yaml:"stop_words"`
	// Boosters are "definitional" phrases that nudge a sentence's score.
	Boosters []string `yaml:"boosters"`
	// Connectives are formal linking words replaced by the simplifier.
	Connectives []Replacement `yaml:"connectives"`
	// GenericTerms pad the quiz distractor pool.
	GenericTerms []string `yaml:"generic_terms"`
	Prompts      Prompts  `yaml:"prompts"`

	stopWords map[string]struct{}
	booster   *regexp.Regexp
}

//go:embed lexicons/*.yaml
var lexiconFS embed.FS

var lexicons = mustLoadLexicons()

func mustLoadLexicons() map[Language]*Lexicon {
	out, err := loadLexicons()
	if err != nil {
		// ALLOW-PANIC: embedded lexicons are part of the build
		panic(err)
	}
	return out
}

func loadLexicons() (map[Language]*Lexicon, error) {
	entries, err := lexiconFS.ReadDir("lexicons")
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicons: %w", err)
	}

	out := make(map[Language]*Lexicon, len(entries))
	for _, e := range entries {
		data, err := lexiconFS.ReadFile(path.Join("lexicons", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon %s: %w", e.Name(), err)
		}
		lx, err := ParseLexicon(data)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: %w", e.Name(), err)
		}
		out[lx.Language] = lx
	}
	if _, ok := out[English]; !ok {
		return nil, errors.New("english lexicon missing")
	}
	return out, nil
}

// ParseLexicon decodes and compiles a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lx Lexicon
	if err := yaml.Unmarshal(data, &lx); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if lx.Language == "" {
		return nil, errors.New("lexicon has no language tag")
	}
	if strings.Count(lx.Prompts.Quiz, "%s") != 1 {
		return nil, errors.New("quiz prompt must contain exactly one %s")
	}

	lx.stopWords = make(map[string]struct{}, len(lx.StopWordList))
	for _, w := range lx.StopWordList {
		lx.stopWords[strings.ToLower(w)] = struct{}{}
	}

	if len(lx.Boosters) > 0 {
		quoted := make([]string, len(lx.Boosters))
		for i, b := range lx.Boosters {
			quoted[i] = regexp.QuoteMeta(b)
		}
		re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}_])`)
		if err != nil {
			return nil, fmt.Errorf("invalid boosters: %w", err)
		}
		lx.booster = re
	}
	return &lx, nil
}

// ParseLanguage resolves a language tag such as "en" or " PL ".
func ParseLanguage(tag string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := lexicons[lang]; !ok {
		return "", fmt.Errorf("%w %q (supported: %v)", ErrUnsupportedLanguage, tag, Languages())
	}
	return lang, nil
}

// LexiconFor returns the lexicon for lang. Unknown languages get English.
func LexiconFor(lang Language) *Lexicon {
	if lx, ok := lexicons[lang]; ok {
		return lx
	}
	return lexicons[English]
}

// Languages lists the registered language tags in sorted order.
func Languages() []Language {
	out := make([]Language, 0, len(lexicons))
	for lang := range lexicons {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsStopWord reports whether the lowercase word is a stop word.
func (lx *Lexicon) IsStopWord(word string) bool {
	_, ok := lx.stopWords[word]
	return ok
}

// isLetter reports whether r belongs to the lexicon's letter class: ASCII
// letters plus the language's own accented letters.
func (lx *Lexicon) isLetter(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return r > 127 && strings.ContainsRune(lx.Letters, r)
}

// HasBooster reports whether the sentence contains a definitional phrase.
func (lx *Lexicon) HasBooster(sentence string) bool {
	return lx.booster != nil && lx.booster.MatchString(sentence)
}
