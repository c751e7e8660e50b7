package litepack

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longText = "The water cycle describes how water moves through the environment. " +
	"Evaporation lifts water from oceans, lakes and rivers into the atmosphere. " +
	"Condensation turns the rising vapour into clouds made of tiny droplets. " +
	"Precipitation returns the water to the ground as rain, snow or hail. " +
	"Runoff carries surface water back into rivers and eventually the oceans. " +
	"Infiltration moves part of the water underground where it becomes groundwater. " +
	"Transpiration releases water vapour from plant leaves into the atmosphere. " +
	"Sublimation converts snow and ice directly into vapour without melting. " +
	"Groundwater slowly feeds springs, wells and rivers during dry seasons. " +
	"Scientists measure rainfall, humidity and river flow to model the cycle."

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("photosynthesis scenario", func(t *testing.T) {
		t.Parallel()
		pack := NewGenerator(WithSeed(1)).Generate(photosynthesis, English)

		require.NotEmpty(t, pack.Summary)
		assert.True(t, strings.HasPrefix(pack.Summary[0], "Photosynthesis is the process"))
		assert.NotContains(t, pack.Easy, "(")
		assert.NotContains(t, pack.Easy, ";")
		assert.NotEmpty(t, pack.Flashcards)
		assert.NotEmpty(t, pack.Quiz)
	})

	t.Run("bounds", func(t *testing.T) {
		t.Parallel()
		pack := NewGenerator(WithSeed(2)).Generate(longText, English)

		assert.LessOrEqual(t, len(pack.Summary), 5)
		assert.LessOrEqual(t, len(pack.Flashcards), 8)
		assert.LessOrEqual(t, len(pack.Quiz), 6)
		assert.NotEmpty(t, pack.Summary)

		cardSources := make(map[int]bool)
		for _, c := range pack.Flashcards {
			assert.False(t, cardSources[c.SourceIndex])
			cardSources[c.SourceIndex] = true
		}
		quizSources := make(map[int]bool)
		for _, q := range pack.Quiz {
			assert.False(t, quizSources[q.SourceIndex])
			quizSources[q.SourceIndex] = true
			assert.Equal(t, q.Answer, q.Options[q.CorrectIndex])
		}
	})

	t.Run("custom limits", func(t *testing.T) {
		t.Parallel()
		g := NewGenerator(WithLimits(Limits{Summary: 2, Quiz: 1}))
		assert.Equal(t, 8, g.Limits().Flashcards)

		pack := g.Generate(longText, English)
		assert.Len(t, pack.Summary, 2)
		assert.Len(t, pack.Quiz, 1)
	})

	t.Run("deterministic sections", func(t *testing.T) {
		t.Parallel()
		a := GenerateLitePack(longText, English)
		b := GenerateLitePack(longText, English)
		assert.Equal(t, a.Summary, b.Summary)
		assert.Equal(t, a.Easy, b.Easy)
		assert.Equal(t, a.Flashcards, b.Flashcards)
	})

	t.Run("seeded generator is fully deterministic", func(t *testing.T) {
		t.Parallel()
		g := NewGenerator(WithSeed(42))
		assert.Equal(t, g.Generate(longText, English), g.Generate(longText, English))
	})

	t.Run("rand factory", func(t *testing.T) {
		t.Parallel()
		calls := 0
		var mu sync.Mutex
		g := NewGenerator(WithRandFactory(func() *rand.Rand {
			mu.Lock()
			calls++
			mu.Unlock()
			return rand.New(rand.NewPCG(5, 5))
		}))
		g.Generate(photosynthesis, English)
		g.Generate(photosynthesis, English)
		assert.Equal(t, 2, calls)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		pack := GenerateLitePack("   ", English)
		require.NotNil(t, pack)
		assert.NotNil(t, pack.Summary)
		assert.Empty(t, pack.Summary)
		assert.Equal(t, "", pack.Easy)
		assert.Empty(t, pack.Flashcards)
		assert.Empty(t, pack.Quiz)
	})

	t.Run("short input still yields summary and cards", func(t *testing.T) {
		t.Parallel()
		pack := GenerateLitePack("The cat sat on the mat. The cat sat on a mat.", English)
		assert.Equal(t, []string{"The cat sat on the mat."}, pack.Summary)
		require.Len(t, pack.Flashcards, 1)
		assert.Equal(t, -1, pack.Flashcards[0].SourceIndex)
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		t.Parallel()
		pack := NewGenerator(WithSeed(3)).Generate(photosynthesis, Language("xx"))
		require.NotEmpty(t, pack.Flashcards)
		assert.True(t, strings.HasPrefix(pack.Flashcards[0].Question, "Fill in the blank: "))
	})

	t.Run("polish", func(t *testing.T) {
		t.Parallel()
		text := "Fotosynteza jest procesem, w którym rośliny wytwarzają glukozę. " +
			"Zachodzi w chloroplastach dzięki chlorofilowi. " +
			"Proces składa się z fazy jasnej i fazy ciemnej. " +
			"Zatem fotosynteza jest niezbędna dla życia."
		pack := NewGenerator(WithSeed(4)).Generate(text, Polish)

		assert.Len(t, pack.Summary, 4)
		assert.Contains(t, pack.Easy, "Więc fotosynteza")
		require.NotEmpty(t, pack.Flashcards)
		assert.True(t, strings.HasPrefix(pack.Flashcards[0].Question, "Uzupełnij lukę: "))
		require.NotEmpty(t, pack.Quiz)
		assert.True(t, strings.HasPrefix(pack.Quiz[0].Question, "Które słowo"))
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()
		g := NewGenerator(WithSeed(9))
		want := g.Generate(longText, English)

		var wg sync.WaitGroup
		results := make([]*LitePack, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = g.Generate(longText, English)
			}(i)
		}
		wg.Wait()
		for _, got := range results {
			assert.Equal(t, want, got)
		}
	})
}

func TestLitePackJSON(t *testing.T) {
	t.Parallel()

	pack := NewGenerator(WithSeed(1)).Generate(photosynthesis, English)
	raw, err := json.Marshal(pack)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.ElementsMatch(t, []string{"summary", "easy", "flashcards", "quiz"}, keys(decoded))

	card := decoded["flashcards"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{"q", "a"}, keys(card))

	item := decoded["quiz"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{"q", "options", "answer", "correct_index", "term"}, keys(item))
	assert.Len(t, item["options"], OptionCount)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
