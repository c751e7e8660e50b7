// Package litepack turns a plain text into a compact study pack: a short
// summary, an easy-language paraphrase, cloze flashcards and a
// multiple-choice quiz.
//
// Generation is purely heuristic. Sentences are ranked with a small linear
// model (lead position, keyword density, length and definitional phrasing)
// and keywords come from word frequency after stop-word filtering. No model
// or network service is involved.
//
// Pipeline:
//
//  1. Normalize and Segment the text into indexed sentences.
//  2. ExtractKeywords ranks content words by frequency.
//  3. SelectKeyPoints scores, condenses and de-duplicates the summary.
//  4. ToEasy, MakeFlashcards and MakeQuiz derive the remaining sections.
//
// Per-language resources (stop words, boosters, connectives, prompts) live in
// a Lexicon. Adding a language means registering another Lexicon value.
//
// Everything except quiz option order is deterministic. Quiz randomness comes
// from an injected *rand.Rand; use WithSeed for reproducible packs.
package litepack
