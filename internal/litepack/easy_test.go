package litepack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToEasy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		lang     Language
		expected string
	}{
		{
			name:     "connectives and punctuation",
			text:     "Thus, plants grow (slowly); they need water: lots of it. Therefore we water them.",
			lang:     English,
			expected: "So, plants grow, they need water, lots of it. So we water them.",
		},
		{
			name:     "connective inside a word is untouched",
			text:     "Thusly is not a connective.",
			lang:     English,
			expected: "Thusly is not a connective.",
		},
		{
			name:     "polish connectives",
			text:     "Pada deszcz. Zatem ziemia jest mokra. W związku z tym zostajemy w domu.",
			lang:     Polish,
			expected: "Pada deszcz. Więc ziemia jest mokra. Więc zostajemy w domu.",
		},
		{
			name:     "single sentence",
			text:     "Only one sentence here.",
			lang:     English,
			expected: "Only one sentence here.",
		},
		{name: "empty", text: "", lang: English, expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ToEasy(Segment(Normalize(tc.text)), tc.lang))
		})
	}

	t.Run("at most five sentences", func(t *testing.T) {
		t.Parallel()
		text := "One here. Two here. Three here. Four here. Five here. Six here. Seven here."
		got := ToEasy(Segment(text), English)
		assert.Equal(t, "One here. Two here. Three here. Four here. Five here.", got)
	})

	t.Run("photosynthesis", func(t *testing.T) {
		t.Parallel()
		sentences := Segment(Normalize(photosynthesis))
		got := ToEasy(sentences, English)
		assert.NotContains(t, got, "(")
		assert.NotContains(t, got, ";")
		assert.True(t, strings.HasPrefix(got, sentences[0].Text))
		assert.True(t, strings.HasSuffix(got, sentences[3].Text))
	})
}
