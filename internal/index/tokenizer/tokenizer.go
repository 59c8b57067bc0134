// Package tokenizer provides text normalisation for the search engine. It
// lower-cases input, splits on non-alphanumeric boundaries, and removes
// stop-words and single-character tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {}, "this": {}, "but": {}, "they": {},
	"have": {}, "had": {}, "what": {}, "when": {}, "where": {},
	"who": {}, "which": {}, "their": {}, "if": {}, "each": {},
	"do": {}, "not": {}, "no": {}, "so": {}, "can": {},
}

const minTokenLength = 2

// Tokenize breaks text into lowercased index terms with stop-words and
// sub-minimum-length tokens removed.
func Tokenize(text string) []string {
	words := split(text)
	terms := make([]string, 0, len(words)/2)
	for _, word := range words {
		if len(word) < minTokenLength {
			continue
		}
		if _, isStop := stopWords[word]; isStop {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// Normalize returns the text's lowercased tokens joined by single spaces,
// keeping stop-words and short tokens. Exact-phrase matching compares the
// normalised query against normalised chunk text, so both sides must go
// through the same function.
func Normalize(text string) string {
	return strings.Join(split(text), " ")
}

// IsStopWord reports whether the lowercased word is in the stop-word set.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

func split(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
