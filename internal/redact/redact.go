// Package redact strips credentials, bot tokens, connection strings, paths
// and similar details from strings before they are logged or returned in
// error responses.
package redact

import (
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedBotTokenPlaceholder   = "[REDACTED_BOT_TOKEN]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// rules run in order; token-shaped patterns go first so the broader path and
// host patterns cannot split them.
var rules = []rule{
	// Telegram bot tokens: "<bot id>:<35 char secret>", bare or inside /bot<token>/ URLs.
	{regexp.MustCompile(`\d{5,12}:[A-Za-z0-9_-]{30,}`), RedactedBotTokenPlaceholder},
	// Connection strings with user info.
	{regexp.MustCompile(`(?i)(postgres(?:ql)?|redis|rediss|mysql|mongodb|db|database|connection)://[^@\s]+@`),
		RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},
	{regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|DATABASE|SCHEMA|VIEW)(?:[\s\w,*()='"]+)?`,
	), "[REDACTED_SQL]"},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		"[REDACTED_HOST]"},
	{regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open|file error)`),
		"[REDACTED_FILE_ERROR]"},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Secret removes every occurrence of a known secret, such as a configured bot
// token, and then applies the pattern rules.
func Secret(input, secret string) string {
	if secret != "" {
		input = strings.ReplaceAll(input, secret, RedactedKeyPlaceholder)
	}
	return String(input)
}
