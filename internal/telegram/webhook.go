package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/phrazzld/scry-lite/internal/task"
)

const maxUpdateBytes = 1 << 20

// BotAPI is the part of the Bot API the webhook needs.
type BotAPI interface {
	Sender
	HasToken() bool
}

// Webhook receives Bot API updates. It always answers 200 so Telegram does
// not redeliver an update; replies are sent in the background.
type Webhook struct {
	bot    *Bot
	api    BotAPI
	tasks  task.Submitter
	logger *slog.Logger
}

// NewWebhook creates the webhook handler. If logger is nil, a default logger
// will be used.
func NewWebhook(bot *Bot, api BotAPI, tasks task.Submitter, logger *slog.Logger) *Webhook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Webhook{
		bot:    bot,
		api:    api,
		tasks:  tasks,
		logger: logger.With(slog.String("component", "telegram_webhook")),
	}
}

type webhookResponse struct {
	OK    bool   `json:"ok"`
	Info  string `json:"info,omitempty"`
	Error string `json:"error,omitempty"`
}

// ServeHTTP implements http.Handler.
func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if r.Method != http.MethodPost {
		writeJSON(w, webhookResponse{OK: true, Info: "POST from Telegram only"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBytes))
	if err != nil {
		log.Warn("failed to read telegram update", slog.String("error", err.Error()))
	}
	in := ParseUpdate(body)

	if !h.api.HasToken() {
		log.Error("telegram update received but bot token is missing")
		writeJSON(w, webhookResponse{OK: false, Error: "Missing token"})
		return
	}
	if !in.HasChat() {
		writeJSON(w, webhookResponse{OK: true})
		return
	}

	replies := h.bot.Replies(in)
	chatID := in.ChatID
	err = h.tasks.Submit(task.NewFuncTask(task.TaskTypeTelegramReply, func(ctx context.Context) error {
		var errs []error
		for _, msg := range replies {
			if err := h.api.SendMessage(ctx, chatID, msg); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}))
	if err != nil {
		log.Warn("dropping telegram reply",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	} else {
		log.Debug("telegram reply queued",
			slog.Int64("chat_id", chatID),
			slog.Int("messages", len(replies)))
	}

	writeJSON(w, webhookResponse{OK: true})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
