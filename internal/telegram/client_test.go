package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:test-token-value-abcdefghijklmnopqrstuvwxyz"

func TestClient_SendMessage(t *testing.T) {
	t.Parallel()

	var chatID, text, noPreview string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot"+testToken+"/sendMessage", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		chatID = r.PostForm.Get("chat_id")
		text = r.PostForm.Get("text")
		noPreview = r.PostForm.Get("disable_web_page_preview")
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", testToken, nil)
	require.NoError(t, c.SendMessage(context.Background(), 42, "hello"))

	assert.Equal(t, "42", chatID)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "true", noPreview)
}

func TestClient_SetWebhook(t *testing.T) {
	t.Parallel()

	var hook string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/setWebhook", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		hook = r.PostForm.Get("url")
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, testToken, nil).SetWebhook(context.Background(), "https://example.com/api/telegram"))
	assert.Equal(t, "https://example.com/api/telegram", hook)
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, testToken, nil).SendMessage(ctx, 1, "x")

	assert.ErrorIs(t, err, ErrAPIRequest)
	assert.NotContains(t, err.Error(), testToken)
}

func TestClient_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, testToken, nil).SendMessage(context.Background(), 1, "x")

	assert.ErrorIs(t, err, ErrAPIRequest)
	assert.Contains(t, err.Error(), "code 400")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_TransportErrorHidesToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, testToken, nil).SetWebhook(context.Background(), "https://example.com/hook")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPIRequest)
	assert.NotContains(t, err.Error(), testToken)
}

func TestClient_MissingToken(t *testing.T) {
	t.Parallel()

	c := NewClient("", "", nil)
	assert.False(t, c.HasToken())
	assert.ErrorIs(t, c.SendMessage(context.Background(), 1, "x"), ErrMissingToken)
}
