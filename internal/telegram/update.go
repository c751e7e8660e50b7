package telegram

import (
	"encoding/json"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/phrazzld/scry-lite/internal/litepack"
)

// Incoming is the normalized view of an update.
type Incoming struct {
	ChatID int64
	Text   string
	Lang   litepack.Language
}

// HasChat reports whether the update named a chat to answer.
func (in Incoming) HasChat() bool {
	return in.ChatID != 0
}

// ParseUpdate decodes a webhook body. Malformed JSON yields an empty
// Incoming, which the webhook acknowledges without replying.
func ParseUpdate(body []byte) Incoming {
	var u tgbotapi.Update
	if err := json.Unmarshal(body, &u); err != nil {
		return Incoming{Lang: litepack.English}
	}
	return incomingFrom(u)
}

// incomingFrom picks the message from message, edited_message or the
// callback query, in that order. The language is Polish when the sender's
// language code starts with "pl" and English otherwise.
func incomingFrom(u tgbotapi.Update) Incoming {
	msg := u.Message
	if msg == nil {
		msg = u.EditedMessage
	}
	if msg == nil && u.CallbackQuery != nil {
		msg = u.CallbackQuery.Message
	}

	in := Incoming{Lang: litepack.English}
	if msg == nil {
		return in
	}
	if msg.Chat != nil {
		in.ChatID = msg.Chat.ID
	}
	in.Text = strings.TrimSpace(msg.Text)
	if msg.From != nil && strings.HasPrefix(strings.ToLower(msg.From.LanguageCode), "pl") {
		in.Lang = litepack.Polish
	}
	return in
}
