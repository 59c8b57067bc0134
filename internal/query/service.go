// Package query implements the public search contract: request validation,
// candidate generation from the lexical index, synonym expansion, filtering,
// ranking, and result assembly. All state it touches is the immutable
// startup snapshot, so concurrent searches need no coordination.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jurisgo/lexsearch/internal/corpus"
	"github.com/jurisgo/lexsearch/internal/index"
	"github.com/jurisgo/lexsearch/internal/index/tokenizer"
	"github.com/jurisgo/lexsearch/internal/ranking"
	"github.com/jurisgo/lexsearch/internal/synonym"
	apperrors "github.com/jurisgo/lexsearch/pkg/errors"
)

const (
	// MaxQueryLength bounds the trimmed query string.
	MaxQueryLength = 500
	// MaxLimit is the hard ceiling on requested result counts.
	MaxLimit = 20
	// DefaultSourceLimit is used when ListSources gets a non-positive limit.
	DefaultSourceLimit = 50
)

// Service is the retrieval engine's public surface.
type Service struct {
	store      *corpus.Store
	idx        *index.Index
	synonyms   *synonym.Table
	strategy   ranking.Strategy
	maxResults int
	logger     *slog.Logger
}

// New wires a Service over an already-built corpus snapshot. It refuses to
// construct over a missing or empty snapshot: there is no degraded
// partial-index mode.
func New(store *corpus.Store, idx *index.Index, synonyms *synonym.Table, strategy ranking.Strategy, maxResults int) (*Service, error) {
	if store == nil || store.Len() == 0 {
		return nil, fmt.Errorf("%w: corpus snapshot is missing or empty", apperrors.ErrCorpusUnavailable)
	}
	if idx == nil {
		return nil, fmt.Errorf("%w: lexical index not built", apperrors.ErrCorpusUnavailable)
	}
	if synonyms == nil {
		return nil, fmt.Errorf("synonym table is required")
	}
	if strategy == nil {
		return nil, fmt.Errorf("ranking strategy is required")
	}
	if maxResults <= 0 || maxResults > MaxLimit {
		maxResults = MaxLimit
	}
	return &Service{
		store:      store,
		idx:        idx,
		synonyms:   synonyms,
		strategy:   strategy,
		maxResults: maxResults,
		logger:     slog.Default().With("component", "query-service"),
	}, nil
}

// Search validates the request, generates candidates from the union of index
// lookups over the expanded term set, applies the book/author filter before
// scoring, ranks, truncates to the limit, and assembles the response. A
// query matching nothing yields an empty result list, not an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*Response, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(req.Query)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.ErrInvalidQuery, 400, "query must not be empty")
	}
	if len(trimmed) > MaxQueryLength {
		return nil, apperrors.Newf(apperrors.ErrInvalidQuery, 400,
			"query exceeds %d characters", MaxQueryLength)
	}
	if req.Limit < 1 || req.Limit > s.maxResults {
		return nil, apperrors.Newf(apperrors.ErrInvalidLimit, 400,
			"limit must be between 1 and %d", s.maxResults)
	}

	literalTerms := tokenizer.Tokenize(trimmed)
	if len(literalTerms) == 0 {
		return nil, apperrors.New(apperrors.ErrInvalidQuery, 400,
			"query contains no searchable terms")
	}
	phrase := tokenizer.Normalize(trimmed)

	expanded := s.expandTerms(literalTerms)
	candidates := s.collectCandidates(expanded, req.BookFilter)

	ranked := s.strategy.Rank(ranking.Query{
		Phrase:     phrase,
		Terms:      expanded,
		Categories: synonym.InferCategories(literalTerms, phrase),
	}, candidates, req.Limit)

	resp := s.assemble(req.Query, ranked)

	s.logger.Info("search completed",
		"query", trimmed,
		"terms", len(literalTerms),
		"expanded_terms", len(expanded),
		"candidates", len(candidates),
		"returned", resp.TotalResults,
		"book_filter", req.BookFilter,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// expandTerms builds the deduplicated weighted term set: every literal term
// at full weight, plus each synonym expansion's tokens at discounted weight.
// When a term appears both literally and via expansion, the literal weight
// wins.
func (s *Service) expandTerms(literalTerms []string) []ranking.Term {
	weights := make(map[string]float64)
	order := make([]string, 0, len(literalTerms)*2)

	add := func(t ranking.Term) {
		if w, seen := weights[t.Text]; seen {
			if t.Weight > w {
				weights[t.Text] = t.Weight
			}
			return
		}
		weights[t.Text] = t.Weight
		order = append(order, t.Text)
	}

	for _, term := range literalTerms {
		add(ranking.LiteralTerm(term))
	}
	for _, term := range literalTerms {
		for _, expansion := range s.synonyms.Expand(term) {
			tokens := tokenizer.Tokenize(expansion)
			for _, tok := range tokens {
				add(ranking.SynonymTerm(tok, len(tokens)))
			}
		}
	}

	result := make([]ranking.Term, len(order))
	for i, text := range order {
		result[i] = ranking.Term{Text: text, Weight: weights[text]}
	}
	return result
}

// collectCandidates unions the postings of every expanded term and applies
// the book/author filter before scoring, so the limit truncation only ever
// sees in-scope chunks. The returned IDs are sorted for determinism.
func (s *Service) collectCandidates(terms []ranking.Term, bookFilter string) []string {
	seen := make(map[string]struct{})
	for _, term := range terms {
		for _, posting := range s.idx.Lookup(term.Text) {
			seen[posting.ChunkID] = struct{}{}
		}
	}

	filter := strings.ToLower(strings.TrimSpace(bookFilter))
	candidates := make([]string, 0, len(seen))
	for chunkID := range seen {
		if filter != "" {
			chunk, ok := s.store.Get(chunkID)
			if !ok {
				continue
			}
			if !strings.Contains(strings.ToLower(chunk.Book), filter) &&
				!strings.Contains(strings.ToLower(chunk.Author), filter) {
				continue
			}
		}
		candidates = append(candidates, chunkID)
	}
	sort.Strings(candidates)
	return candidates
}

// assemble turns ranked chunk IDs into the response contract, collecting the
// distinct source list in ascending order.
func (s *Service) assemble(rawQuery string, ranked []ranking.ScoredChunk) *Response {
	results := make([]Result, 0, len(ranked))
	sourceSet := make(map[string]struct{})

	for _, sc := range ranked {
		chunk, ok := s.store.Get(sc.ChunkID)
		if !ok {
			continue
		}
		source := displaySource(chunk.Source)
		sourceSet[source] = struct{}{}
		results = append(results, Result{
			Content: chunk.Text,
			Metadata: Metadata{
				Source:   source,
				Book:     chunk.Book,
				Author:   chunk.Author,
				Category: chunk.Category,
				Page:     chunk.Page,
			},
			Score:        sc.Score,
			MatchedTerms: sc.MatchedTerms,
		})
	}

	sources := make([]string, 0, len(sourceSet))
	for source := range sourceSet {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	return &Response{
		Query:        rawQuery,
		Results:      results,
		TotalResults: len(results),
		Sources:      sources,
	}
}

// Stats returns aggregate corpus counts, precomputed at snapshot build time.
func (s *Service) Stats() Stats {
	return Stats{
		TotalDocuments: s.store.Len(),
		TotalSources:   len(s.store.Sources()),
		Categories:     s.store.Categories(),
		LastUpdated:    s.store.BuiltAt().Format(time.RFC3339),
	}
}

// ListSources returns up to limit sources with per-source chunk counts,
// ordered by count descending then source name ascending.
func (s *Service) ListSources(limit int) []corpus.SourceInfo {
	if limit <= 0 {
		limit = DefaultSourceLimit
	}
	all := s.store.Sources()
	if len(all) > limit {
		all = all[:limit]
	}
	result := make([]corpus.SourceInfo, len(all))
	for i, info := range all {
		info.Source = displaySource(info.Source)
		result[i] = info
	}
	return result
}

// displaySource rewrites ingestion-side .txt names to the original .pdf
// titles the corpus was extracted from.
func displaySource(source string) string {
	if strings.HasSuffix(source, ".txt") {
		return strings.TrimSuffix(source, ".txt") + ".pdf"
	}
	return source
}
