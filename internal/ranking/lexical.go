package ranking

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/jurisgo/lexsearch/internal/corpus"
	"github.com/jurisgo/lexsearch/internal/index"
)

const (
	// phraseBonus dominates every other signal: a handful of term matches
	// plus the category bonus stays well below it.
	phraseBonus = 10.0
	// categoryBonus is small relative to phrase and term signals; it breaks
	// near-ties, never overrides a lexical match.
	categoryBonus = 0.25
)

// Lexical scores chunks by exact-phrase containment, weighted term overlap
// with logarithmic frequency scaling, and a small category bonus. Ties are
// broken by source, then page, then chunk ID, so repeated identical queries
// always produce identical orderings.
type Lexical struct {
	idx    *index.Index
	store  *corpus.Store
	logger *slog.Logger
}

func NewLexical(idx *index.Index, store *corpus.Store) *Lexical {
	return &Lexical{
		idx:    idx,
		store:  store,
		logger: slog.Default().With("component", "lexical-ranker"),
	}
}

type scoredCandidate struct {
	ScoredChunk
	chunk *corpus.Chunk
}

func (l *Lexical) Rank(q Query, candidates []string, limit int) []ScoredChunk {
	scored := make([]scoredCandidate, 0, len(candidates))

	for _, chunkID := range candidates {
		chunk, ok := l.store.Get(chunkID)
		if !ok {
			continue
		}

		var score float64
		var matched []string

		if q.Phrase != "" && containsPhrase(l.idx.NormalizedText(chunkID), q.Phrase) {
			score += phraseBonus
		}

		for _, term := range q.Terms {
			freq := l.idx.Frequency(term.Text, chunkID)
			if freq == 0 {
				continue
			}
			score += term.Weight * (1 + math.Log(float64(freq)))
			matched = append(matched, term.Text)
		}

		if score == 0 {
			continue
		}

		for _, cat := range q.Categories {
			if cat == chunk.Category {
				score += categoryBonus
				break
			}
		}

		scored = append(scored, scoredCandidate{
			ScoredChunk: ScoredChunk{
				ChunkID:      chunkID,
				Score:        math.Round(score*10000) / 10000,
				MatchedTerms: matched,
			},
			chunk: chunk,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].chunk.Source != scored[j].chunk.Source {
			return scored[i].chunk.Source < scored[j].chunk.Source
		}
		if scored[i].chunk.Page != scored[j].chunk.Page {
			return scored[i].chunk.Page < scored[j].chunk.Page
		}
		return scored[i].ChunkID < scored[j].ChunkID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	result := make([]ScoredChunk, len(scored))
	for i, sc := range scored {
		result[i] = sc.ScoredChunk
	}
	return result
}

// containsPhrase reports whether the normalized phrase occurs in the
// normalized text on word boundaries.
func containsPhrase(text, phrase string) bool {
	if text == "" || phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
