package litepack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag     string
		want    Language
		wantErr bool
	}{
		{tag: "en", want: English},
		{tag: " PL ", want: Polish},
		{tag: "de", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLanguage(tc.tag)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLanguage)
				assert.Contains(t, err.Error(), "(supported: [en pl])")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEmbeddedLexicons(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Language{English, Polish}, Languages())

	en := LexiconFor(English)
	assert.True(t, en.IsStopWord("the"))
	assert.False(t, en.IsStopWord("photosynthesis"))
	assert.Len(t, en.GenericTerms, 8)
	assert.Equal(t, "Fill in the blank: ", en.Prompts.Cloze)

	pl := LexiconFor(Polish)
	assert.True(t, pl.IsStopWord("który"))
	assert.True(t, pl.isLetter('ż'))
	assert.False(t, en.isLetter('ż'))
	assert.True(t, pl.HasBooster("woda składa się z tlenu"))
	assert.False(t, pl.HasBooster("tostery"))

	assert.Same(t, en, LexiconFor(Language("xx")))
}

func TestParseLexicon(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		lx, err := ParseLexicon([]byte(`
language: xx
stop_words: [Foo, bar]
boosters: [is]
prompts:
  quiz: "Pick: %s"
`))
		require.NoError(t, err)
		assert.Equal(t, Language("xx"), lx.Language)
		assert.True(t, lx.IsStopWord("foo"))
		assert.True(t, lx.HasBooster("it is here"))
		assert.False(t, lx.HasBooster("this"))
	})

	t.Run("missing language", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLexicon([]byte(`prompts: {quiz: "%s"}`))
		assert.Error(t, err)
	})

	t.Run("bad quiz prompt", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLexicon([]byte(`{language: xx, prompts: {quiz: "no verb"}}`))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := ParseLexicon([]byte("language: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("no boosters", func(t *testing.T) {
		t.Parallel()
		lx, err := ParseLexicon([]byte(`{language: xx, prompts: {quiz: "%s"}}`))
		require.NoError(t, err)
		assert.False(t, lx.HasBooster("it is"))
	})
}
