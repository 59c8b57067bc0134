package corpus

import (
	"fmt"
	"sort"
	"time"
)

// Store is a read-only snapshot of the corpus. All aggregate views (source
// catalog, category list) are computed once in NewStore so query-time reads
// never touch shared mutable state.
type Store struct {
	chunks     []Chunk
	byID       map[string]int
	sources    []SourceInfo
	categories []string
	builtAt    time.Time
}

// NewStore builds a snapshot from the given chunks. Chunk IDs must be
// non-empty and unique; the input slice is copied, not retained.
func NewStore(chunks []Chunk) (*Store, error) {
	s := &Store{
		chunks:  make([]Chunk, len(chunks)),
		byID:    make(map[string]int, len(chunks)),
		builtAt: time.Now().UTC(),
	}
	copy(s.chunks, chunks)

	for i, c := range s.chunks {
		if c.ID == "" {
			return nil, fmt.Errorf("chunk at position %d has an empty id", i)
		}
		if prev, exists := s.byID[c.ID]; exists {
			return nil, fmt.Errorf("duplicate chunk id %q (positions %d and %d)", c.ID, prev, i)
		}
		s.byID[c.ID] = i
	}

	s.buildAggregates()
	return s, nil
}

// buildAggregates precomputes the source catalog and category list.
func (s *Store) buildAggregates() {
	type sourceAgg struct {
		info  SourceInfo
		first int
	}
	bySource := make(map[string]*sourceAgg)
	categorySet := make(map[string]struct{})

	for i, c := range s.chunks {
		if c.Category != "" {
			categorySet[c.Category] = struct{}{}
		}
		agg, ok := bySource[c.Source]
		if !ok {
			agg = &sourceAgg{
				info: SourceInfo{
					Source:   c.Source,
					Book:     c.Book,
					Category: c.Category,
				},
				first: i,
			}
			bySource[c.Source] = agg
		}
		agg.info.DocumentCount++
	}

	s.sources = make([]SourceInfo, 0, len(bySource))
	for _, agg := range bySource {
		s.sources = append(s.sources, agg.info)
	}
	sort.Slice(s.sources, func(i, j int) bool {
		if s.sources[i].DocumentCount != s.sources[j].DocumentCount {
			return s.sources[i].DocumentCount > s.sources[j].DocumentCount
		}
		return s.sources[i].Source < s.sources[j].Source
	})

	s.categories = make([]string, 0, len(categorySet))
	for cat := range categorySet {
		s.categories = append(s.categories, cat)
	}
	sort.Strings(s.categories)
}

// Get returns the chunk with the given ID.
func (s *Store) Get(id string) (*Chunk, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.chunks[idx], true
}

// Chunks returns the full chunk slice. Callers must not mutate it.
func (s *Store) Chunks() []Chunk {
	return s.chunks
}

// Len returns the number of chunks in the snapshot.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Sources returns the precomputed source catalog, ordered by chunk count
// descending, then source name ascending.
func (s *Store) Sources() []SourceInfo {
	return s.sources
}

// Categories returns the distinct legal categories, sorted ascending.
func (s *Store) Categories() []string {
	return s.categories
}

// BuiltAt returns the snapshot build timestamp.
func (s *Store) BuiltAt() time.Time {
	return s.builtAt
}
