package telegram

import "github.com/phrazzld/scry-lite/internal/litepack"

// texts holds the user-facing strings for one language.
type texts struct {
	Start          string
	Help           string
	HelpAppURL     string
	PackTooShort   string
	UnknownCommand string
	Header         string
	Summary        string
	Easy           string
	Flashcards     string
	Quiz           string
	Answer         string
	FullApp        string
}

var catalog = map[litepack.Language]texts{
	litepack.English: {
		Start:          "Hi! Send /pack and paste some text to get a Lite Pack.\nExample:\n/pack Photosynthesis is the process ...",
		Help:           "Usage: /pack <your text>. You will get a summary, an easy-language version, flashcards and a quiz.",
		HelpAppURL:     "Full app: %s",
		PackTooShort:   "Please paste more text after /pack (min. %d characters).",
		UnknownCommand: "Unknown command. Use /pack or /help.",
		Header:         "📦 Lite Pack",
		Summary:        "Summary:",
		Easy:           "Easy language:",
		Flashcards:     "Flashcards:",
		Quiz:           "Quiz:",
		Answer:         "Answer: %s",
		FullApp:        "Full app: %s",
	},
	litepack.Polish: {
		Start:          "Cześć! Wyślij /pack i po spacji wklej tekst, a zrobię Lite Pack.\nPrzykład:\n/pack Fotosynteza to proces ...",
		Help:           "Użycie: /pack <twój tekst>. Otrzymasz podsumowanie, wersję prostym językiem, fiszki i quiz.",
		HelpAppURL:     "Pełna aplikacja: %s",
		PackTooShort:   "Wklej proszę dłuższy tekst po /pack (min. %d znaków).",
		UnknownCommand: "Nieznana komenda. Użyj /pack lub /help.",
		Header:         "📦 Lite Pack",
		Summary:        "Podsumowanie:",
		Easy:           "Prostym językiem:",
		Flashcards:     "Fiszki:",
		Quiz:           "Quiz:",
		Answer:         "Odpowiedź: %s",
		FullApp:        "Pełna wersja: %s",
	},
}

func textsFor(lang litepack.Language) texts {
	if t, ok := catalog[lang]; ok {
		return t
	}
	return catalog[litepack.English]
}
