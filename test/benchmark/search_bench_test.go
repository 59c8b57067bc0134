// Package benchmark contains Go benchmarks for the tokenizer, inverted index,
// and the full search pipeline, measuring throughput and allocation behaviour.
package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/jurisgo/lexsearch/internal/corpus"
	"github.com/jurisgo/lexsearch/internal/index"
	"github.com/jurisgo/lexsearch/internal/query"
	"github.com/jurisgo/lexsearch/internal/ranking"
	"github.com/jurisgo/lexsearch/internal/synonym"
)

var chunkTexts = []string{
	"The Constitution of India is the supreme law of India and sets out fundamental rights, directive principles and the duties of citizens.",
	"A tort is a civil wrong that causes a claimant to suffer loss or harm, resulting in legal liability for the tortfeasor.",
	"Criminal law proscribes conduct perceived as threatening, harmful, or otherwise endangering to the safety and welfare of people.",
	"Contract law governs the making and enforcement of agreements between two or more parties with mutual obligations.",
	"Negligence requires a duty of care, a breach of that duty, causation, and resulting damage to the claimant.",
	"A writ of habeas corpus requires a person under arrest to be brought before a judge or into court.",
	"Anticipatory bail is a direction to release a person on bail, issued before the person is arrested.",
	"Defamation is the act of communicating false statements about a person that injure the reputation of that person.",
}

func buildCorpus(b *testing.B, n int) *corpus.Store {
	b.Helper()
	chunks := make([]corpus.Chunk, n)
	for i := 0; i < n; i++ {
		chunks[i] = corpus.Chunk{
			ID:       fmt.Sprintf("chunk-%d", i),
			Text:     chunkTexts[i%len(chunkTexts)],
			Source:   fmt.Sprintf("book_%d.txt", i%10),
			Book:     fmt.Sprintf("Book %d", i%10),
			Category: "Constitutional Law",
			Page:     i,
		}
	}
	store, err := corpus.NewStore(chunks)
	if err != nil {
		b.Fatalf("building store: %v", err)
	}
	return store
}

func buildService(b *testing.B, n int) *query.Service {
	b.Helper()
	store := buildCorpus(b, n)
	idx := index.Build(store)
	svc, err := query.New(store, idx, synonym.NewTable(synonym.Default()), ranking.NewLexical(idx, store), 20)
	if err != nil {
		b.Fatalf("building service: %v", err)
	}
	return svc
}

// BenchmarkIndexBuild measures full index construction over corpora of
// increasing size.
func BenchmarkIndexBuild(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("chunks_%d", size), func(b *testing.B) {
			store := buildCorpus(b, size)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ix := index.Build(store)
				_ = ix
			}
		})
	}
}

// BenchmarkSearch measures end-to-end query latency over a 10 000 chunk
// corpus, including synonym expansion and ranking.
func BenchmarkSearch(b *testing.B) {
	svc := buildService(b, 10000)
	ctx := context.Background()

	queries := []query.SearchRequest{
		{Query: "fundamental rights", Limit: 10},
		{Query: "tort", Limit: 10},
		{Query: "breach of contract damages", Limit: 10},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := svc.Search(ctx, queries[i%len(queries)])
		if err != nil {
			b.Fatalf("search: %v", err)
		}
		_ = resp
	}
}

// BenchmarkSearchParallel measures concurrent read throughput against the
// immutable snapshot.
func BenchmarkSearchParallel(b *testing.B) {
	svc := buildService(b, 10000)
	ctx := context.Background()
	req := query.SearchRequest{Query: "fundamental rights", Limit: 10}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			resp, err := svc.Search(ctx, req)
			if err != nil {
				b.Fatalf("search: %v", err)
			}
			_ = resp
		}
	})
}

// BenchmarkSearchWithFilter measures the cost of the book filter applied
// before scoring.
func BenchmarkSearchWithFilter(b *testing.B) {
	svc := buildService(b, 10000)
	ctx := context.Background()
	req := query.SearchRequest{Query: "contract", Limit: 10, BookFilter: "book 3"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := svc.Search(ctx, req)
		if err != nil {
			b.Fatalf("search: %v", err)
		}
		_ = resp
	}
}
