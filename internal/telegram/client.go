package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/phrazzld/scry-lite/internal/redact"
)

// DefaultAPIBaseURL is the public Bot API endpoint.
const DefaultAPIBaseURL = "https://api.telegram.org"

// Client errors.
var (
	ErrMissingToken = errors.New("telegram bot token is not configured")
	ErrAPIRequest   = errors.New("telegram api request failed")
)

// Sender delivers a text message to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Client calls the Bot API through tgbotapi. The bot token never appears in
// returned errors or log output.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *slog.Logger
}

var _ Sender = (*Client)(nil)

// NewClient creates a Bot API client. An empty baseURL uses
// DefaultAPIBaseURL. If logger is nil, a default logger will be used.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/bot%s/%s",
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With(slog.String("component", "telegram_client")),
	}
}

// HasToken reports whether a bot token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// SendMessage implements Sender.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	return c.request(ctx, "sendMessage", msg)
}

// SetWebhook registers url as the bot's webhook.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("%w: setWebhook: invalid url: %v", ErrAPIRequest, err)
	}
	return c.request(ctx, "setWebhook", wh)
}

func (c *Client) request(ctx context.Context, method string, cfg tgbotapi.Chattable) error {
	if c.token == "" {
		return ErrMissingToken
	}

	_, err := c.botAPI(ctx).Request(cfg)
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		c.logger.Warn("telegram api rejected request",
			slog.String("method", method),
			slog.Int("code", apiErr.Code),
			slog.String("description", apiErr.Message))
		return fmt.Errorf("%w: %s: code %d: %s", ErrAPIRequest, method, apiErr.Code, apiErr.Message)
	}

	c.logger.Warn("telegram request failed",
		slog.String("method", method),
		slog.String("error", c.redact(err)))
	return fmt.Errorf("%w: %s: %s", ErrAPIRequest, method, c.redact(err))
}

// botAPI builds a BotAPI bound to ctx. tgbotapi.NewBotAPI is avoided
// because it calls getMe on construction.
func (c *Client) botAPI(ctx context.Context) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  c.token,
		Client: contextClient{ctx: ctx, client: c.http},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(c.endpoint)
	return bot
}

// contextClient attaches a context to requests tgbotapi builds without one.
type contextClient struct {
	ctx    context.Context
	client *http.Client
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx))
}

func (c *Client) redact(err error) string {
	return redact.Secret(err.Error(), c.token)
}
