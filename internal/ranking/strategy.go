// Package ranking scores candidate chunks against an expanded query and
// produces a deterministic total order. The lexical strategy implemented here
// is the only built-in one; the Strategy interface exists so an alternative
// ranker (e.g. an embedding-based one) can be swapped in by configuration
// without touching the query service.
package ranking

// Term is one entry of the expanded query term set. Weight encodes how the
// term entered the query: literal terms carry full weight, synonym-expansion
// terms a strictly smaller one, so literal matches always outrank
// pure-synonym matches of equal count.
type Term struct {
	Text   string
	Weight float64
}

// Query is the scoring engine's input: already validated, normalized, and
// expanded by the query service.
type Query struct {
	// Phrase is the full normalized query used for exact-phrase matching.
	Phrase string
	// Terms is the deduplicated expanded term set.
	Terms []Term
	// Categories are the legal categories inferred from the query.
	Categories []string
}

// ScoredChunk is one ranked result.
type ScoredChunk struct {
	ChunkID      string
	Score        float64
	MatchedTerms []string
}

// Strategy ranks candidate chunk IDs for a query and returns the top results
// in descending score order, at most limit entries.
type Strategy interface {
	Rank(q Query, candidates []string, limit int) []ScoredChunk
}

const (
	literalWeight = 1.0
	synonymWeight = 0.4
)

// LiteralTerm builds a full-weight term for a token typed by the user.
func LiteralTerm(text string) Term {
	return Term{Text: text, Weight: literalWeight}
}

// SynonymTerm builds a discounted term for one token of a synonym expansion.
// The discount is split across the expansion's tokens so a multi-word
// synonym can never out-score a single literal match.
func SynonymTerm(text string, phraseTokens int) Term {
	if phraseTokens < 1 {
		phraseTokens = 1
	}
	return Term{Text: text, Weight: synonymWeight / float64(phraseTokens)}
}
