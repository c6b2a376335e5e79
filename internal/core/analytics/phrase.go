package analytics

import (
	"regexp"
	"strings"
)

// PhraseCounter counts case-insensitive occurrences of a literal multi-word
// phrase, tolerating flexible internal whitespace. It is deliberately
// independent of the word tokenizer: phrase counters are product extras that
// can be added or dropped without touching the core statistics
type PhraseCounter struct {
	phrase string
	re     *regexp.Regexp
}

// NewPhraseCounter compiles a counter for the given phrase.
// Returns nil for an empty phrase
func NewPhraseCounter(phrase string) *PhraseCounter {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	re := regexp.MustCompile(`\b` + strings.Join(words, `\s+`) + `\b`)
	return &PhraseCounter{phrase: strings.Join(strings.Fields(phrase), " "), re: re}
}

// Phrase returns the normalized phrase this counter matches
func (p *PhraseCounter) Phrase() string { return p.phrase }

// Count returns the number of matches in text
func (p *PhraseCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(p.re.FindAllStringIndex(strings.ToLower(text), -1))
}
