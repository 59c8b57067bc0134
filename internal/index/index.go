// Package index builds the inverted lexical index over a corpus snapshot.
// The index is constructed once by Build and is immutable afterwards, so
// concurrent readers need no locking.
package index

import (
	"log/slog"
	"sort"

	"github.com/jurisgo/lexsearch/internal/corpus"
	"github.com/jurisgo/lexsearch/internal/index/tokenizer"
)

// Index maps normalized terms to the chunks containing them, with per-chunk
// frequencies, and keeps each chunk's normalized text for phrase matching.
type Index struct {
	postings    map[string]map[string]int
	normText    map[string]string
	docLengths  map[string]int
	totalTokens int64
	docCount    int
}

// Build tokenizes every chunk in the snapshot and constructs the full index.
// It runs to completion before returning; a partially built index is never
// observable.
func Build(store *corpus.Store) *Index {
	ix := &Index{
		postings:   make(map[string]map[string]int),
		normText:   make(map[string]string, store.Len()),
		docLengths: make(map[string]int, store.Len()),
	}

	for _, chunk := range store.Chunks() {
		terms := tokenizer.Tokenize(chunk.Text)
		ix.normText[chunk.ID] = tokenizer.Normalize(chunk.Text)
		ix.docLengths[chunk.ID] = len(terms)
		ix.totalTokens += int64(len(terms))
		ix.docCount++

		for _, term := range terms {
			chunkFreqs, exists := ix.postings[term]
			if !exists {
				chunkFreqs = make(map[string]int)
				ix.postings[term] = chunkFreqs
			}
			chunkFreqs[chunk.ID]++
		}
	}

	slog.Default().With("component", "lexical-index").Info("index built",
		"chunks", ix.docCount,
		"terms", len(ix.postings),
		"total_tokens", ix.totalTokens,
	)
	return ix
}

// Lookup returns the postings for a term, sorted by chunk ID. Unknown terms
// yield an empty list, never an error.
func (ix *Index) Lookup(term string) PostingList {
	chunkFreqs, exists := ix.postings[term]
	if !exists {
		return nil
	}
	result := make(PostingList, 0, len(chunkFreqs))
	for chunkID, freq := range chunkFreqs {
		result = append(result, Posting{ChunkID: chunkID, Frequency: freq})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ChunkID < result[j].ChunkID
	})
	return result
}

// Frequency returns how many times term occurs in the given chunk, or 0.
func (ix *Index) Frequency(term, chunkID string) int {
	return ix.postings[term][chunkID]
}

// NormalizedText returns the chunk's normalized full text for phrase
// matching, or "" for an unknown chunk.
func (ix *Index) NormalizedText(chunkID string) string {
	return ix.normText[chunkID]
}

// DocLength returns the number of index terms in the given chunk.
func (ix *Index) DocLength(chunkID string) int {
	return ix.docLengths[chunkID]
}

// AvgDocLength returns the mean number of index terms per chunk.
func (ix *Index) AvgDocLength() float64 {
	if ix.docCount == 0 {
		return 0
	}
	return float64(ix.totalTokens) / float64(ix.docCount)
}

// Terms returns the number of distinct terms in the index.
func (ix *Index) Terms() int {
	return len(ix.postings)
}

// DocCount returns the number of indexed chunks.
func (ix *Index) DocCount() int {
	return ix.docCount
}
