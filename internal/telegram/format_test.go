package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallPack() *litepack.LitePack {
	return &litepack.LitePack{
		Summary:    []string{"One."},
		Easy:       "Easy.",
		Flashcards: []litepack.Flashcard{{Question: "Q1 ____.", Answer: "ans"}},
		Quiz: []litepack.QuizItem{{
			Question:      "Pick ____.",
			Options:       [litepack.OptionCount]string{"a", "b", "c", "d"},
			CorrectLetter: "B",
			CorrectIndex:  1,
		}},
	}
}

func TestFormatPack(t *testing.T) {
	t.Parallel()

	got := FormatPack(smallPack(), litepack.English, "https://app.example", 0)

	want := "📦 Lite Pack\n\n" +
		"Summary:\n• One.\n\n" +
		"Easy language:\nEasy.\n\n" +
		"Flashcards:\n1. Q1 ____.\n   → ans\n\n" +
		"Quiz:\n1. Pick ____.\n   A) a\n   B) b\n   C) c\n   D) d\n   Answer: B\n\n" +
		"Full app: https://app.example"
	assert.Equal(t, []string{want}, got)
}

func TestFormatPack_Polish(t *testing.T) {
	t.Parallel()

	got := FormatPack(smallPack(), litepack.Polish, "", 0)

	require.Len(t, got, 1)
	assert.Contains(t, got[0], "Podsumowanie:")
	assert.Contains(t, got[0], "Odpowiedź: B")
	assert.NotContains(t, got[0], "Pełna wersja")
}

func TestFormatPack_SplitsLongPacks(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("Photosynthesis converts light energy into chemical energy in plants. "+
		"Chlorophyll absorbs light in the chloroplasts of leaf cells. ", 10)
	pack := litepack.NewGenerator(litepack.WithSeed(7)).Generate(text, litepack.English)

	msgs := FormatPack(pack, litepack.English, "", 200)

	require.Greater(t, len(msgs), 1)
	for _, m := range msgs {
		assert.LessOrEqual(t, utf8.RuneCountInString(m), 200)
		assert.NotEqual(t, "\n", m[:1])
	}
	assert.True(t, strings.HasPrefix(msgs[0], "📦 Lite Pack"))
}

func TestFormatPack_Nil(t *testing.T) {
	t.Parallel()
	assert.Empty(t, FormatPack(nil, litepack.English, "", 0))
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{"fits", "a\n\nb", 100, []string{"a\n\nb"}},
		{"breaks on lines", "aaa\nbbb\nccc", 7, []string{"aaa\nbbb", "ccc"}},
		{"hard split long line", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"drops blank edges", "aaa\n\nbbb", 4, []string{"aaa", "bbb"}},
		{"empty", "\n\n", 10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitMessage(tt.text, tt.maxLen))
		})
	}
}
