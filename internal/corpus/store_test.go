package corpus

import (
	"reflect"
	"testing"
)

func sampleChunks() []Chunk {
	return []Chunk{
		{ID: "d1", Text: "one", Source: "penal.txt", Book: "Indian Penal Code", Category: "Criminal Law", Page: 1},
		{ID: "d2", Text: "two", Source: "penal.txt", Book: "Indian Penal Code", Category: "Criminal Law", Page: 2},
		{ID: "d3", Text: "three", Source: "contracts.txt", Book: "Indian Contract Act", Category: "Contract Law", Page: 1},
		{ID: "d4", Text: "four", Source: "torts.txt", Book: "Law of Torts", Category: "Tort Law", Page: 1},
	}
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(sampleChunks())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Len() != 4 {
		t.Errorf("Len() = %d, want 4", store.Len())
	}

	chunk, ok := store.Get("d3")
	if !ok {
		t.Fatal("Get(d3) not found")
	}
	if chunk.Book != "Indian Contract Act" {
		t.Errorf("unexpected chunk: %+v", chunk)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) should report not found")
	}
}

func TestNewStoreRejectsEmptyID(t *testing.T) {
	_, err := NewStore([]Chunk{{ID: "", Text: "x"}})
	if err == nil {
		t.Fatal("expected an error for an empty chunk id")
	}
}

func TestNewStoreRejectsDuplicateID(t *testing.T) {
	_, err := NewStore([]Chunk{
		{ID: "dup", Text: "x"},
		{ID: "dup", Text: "y"},
	})
	if err == nil {
		t.Fatal("expected an error for duplicate chunk ids")
	}
}

func TestSourcesOrderedByCountThenName(t *testing.T) {
	store, err := NewStore(sampleChunks())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	sources := store.Sources()
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	// penal.txt has 2 chunks, the rest have 1 and sort by name.
	wantOrder := []string{"penal.txt", "contracts.txt", "torts.txt"}
	for i, want := range wantOrder {
		if sources[i].Source != want {
			t.Errorf("sources[%d] = %q, want %q", i, sources[i].Source, want)
		}
	}
	if sources[0].DocumentCount != 2 {
		t.Errorf("penal.txt count = %d, want 2", sources[0].DocumentCount)
	}
}

func TestCategoriesSorted(t *testing.T) {
	store, err := NewStore(sampleChunks())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	want := []string{"Contract Law", "Criminal Law", "Tort Law"}
	if got := store.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestStoreCopiesInput(t *testing.T) {
	chunks := sampleChunks()
	store, err := NewStore(chunks)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	chunks[0].Text = "mutated"
	got, _ := store.Get("d1")
	if got.Text != "one" {
		t.Error("store must copy the input slice, not retain it")
	}
}
