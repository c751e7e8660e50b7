package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const article = "Photosynthesis is the process used by plants to convert light energy into chemical energy. " +
	"The light-dependent reactions take place in the thylakoid membranes of the chloroplast. " +
	"Chlorophyll absorbs mostly blue and red light and reflects green light."

// execute runs the CLI in process and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerate_StdinJSON(t *testing.T) {
	out, err := execute(t, article, "generate", "--seed", "7")
	require.NoError(t, err)

	var pack litepack.LitePack
	require.NoError(t, json.Unmarshal([]byte(out), &pack))
	assert.NotEmpty(t, pack.Summary)
	assert.NotEmpty(t, pack.Easy)
	assert.NotEmpty(t, pack.Flashcards)
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	first, err := execute(t, article, "generate", "--seed", "42")
	require.NoError(t, err)
	second, err := execute(t, article, "generate", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_FileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(article), 0o600))

	out, err := execute(t, "", "generate", "--file", path, "--lang", "PL", "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "•")
	assert.Contains(t, out, "Podsumowanie:")
}

func TestGenerate_PDF(t *testing.T) {
	out, err := execute(t, article, "generate", "--format", "pdf", "--title", "Plants", "--seed", "3")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"too short", "Tiny.", []string{"generate"}, "too short"},
		{"bad language", article, []string{"generate", "--lang", "de"}, "unsupported language"},
		{"bad format", article, []string{"generate", "--format", "xml"}, "unknown format"},
		{"missing file", "", []string{"generate", "--file", "/does/not/exist.txt"}, "failed to read input file"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.stdin, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestExtract(t *testing.T) {
	page := `<html><head><title>Plants</title></head><body><nav>Menu</nav><article>` +
		`<p>Photosynthesis is the process used by plants to convert light energy into chemical energy.</p>` +
		`<p>The light-dependent reactions take place in the thylakoid membranes of the chloroplast.</p>` +
		`</article></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	out, err := execute(t, "", "extract", "--url", srv.URL)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Plants", got["title"])
	assert.Contains(t, got["text"], "thylakoid")
	assert.NotContains(t, got["text"], "Menu")

	out, err = execute(t, "", "extract", "--url", srv.URL, "--generate", "--format", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Plants\n"+srv.URL))

	out, err = execute(t, "", "extract", "--url", srv.URL, "--generate", "--format", "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
}

func TestExtract_InvalidURL(t *testing.T) {
	_, err := execute(t, "", "extract", "--url", "ftp://example.com")
	assert.Error(t, err)

	_, err = execute(t, "", "extract")
	assert.Error(t, err)
}

func TestSetWebhook(t *testing.T) {
	var gotPath, gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotURL = r.PostForm.Get("url")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer srv.Close()

	t.Setenv("SCRY_TELEGRAM_API_BASE_URL", srv.URL)
	t.Setenv("SCRY_TELEGRAM_BOT_TOKEN", "123456:test-token")

	out, err := execute(t, "", "set-webhook", "--url", "https://example.com/api/telegram")

	require.NoError(t, err)
	assert.Equal(t, "/bot123456:test-token/setWebhook", gotPath)
	assert.Equal(t, "https://example.com/api/telegram", gotURL)
	assert.Contains(t, out, "webhook set")
}

func TestSetWebhook_MissingToken(t *testing.T) {
	t.Setenv("SCRY_TELEGRAM_BOT_TOKEN", "")

	_, err := execute(t, "", "set-webhook", "--url", "https://example.com/api/telegram")
	assert.Error(t, err)
}
