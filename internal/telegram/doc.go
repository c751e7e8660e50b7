// Package telegram is the chat transport: it parses Bot API webhook updates,
// answers /start, /help and /pack commands with localized text, formats
// packs into message-sized chunks and sends them through the Bot API.
package telegram
