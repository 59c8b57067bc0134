package synonym

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExpandCanonicalTerm(t *testing.T) {
	table := NewTable(Default())
	got := table.Expand("tort")
	want := []string{"tort", "civil wrong"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(tort) = %v, want %v", got, want)
	}
}

func TestExpandIsBidirectional(t *testing.T) {
	table := NewTable(Default())

	// Looking up a synonym yields the canonical term and its sibling synonyms.
	got := table.Expand("agreement")
	if got[0] != "agreement" {
		t.Fatalf("Expand must return the term itself first, got %v", got)
	}
	rest := got[1:]
	for _, want := range []string{"contract", "binding promise"} {
		found := false
		for _, s := range rest {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expand(agreement) = %v, missing %q", got, want)
		}
	}
}

func TestExpandUnknownTerm(t *testing.T) {
	table := NewTable(Default())
	got := table.Expand("zamindari")
	if !reflect.DeepEqual(got, []string{"zamindari"}) {
		t.Errorf("Expand(zamindari) = %v, want just the term", got)
	}
}

func TestExpandNormalizesInput(t *testing.T) {
	table := NewTable(Default())
	if !reflect.DeepEqual(table.Expand("  TORT "), table.Expand("tort")) {
		t.Error("Expand must normalize case and whitespace")
	}
}

func TestExpandDeterministicOrder(t *testing.T) {
	table := NewTable(Default())
	first := table.Expand("negligence")
	for i := 0; i < 10; i++ {
		if got := table.Expand("negligence"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Expand order changed between calls: %v vs %v", first, got)
		}
	}
}

func TestNewTableMergesEntryMaps(t *testing.T) {
	table := NewTable(Default(), map[string][]string{
		"appeal": {"judicial review"},
	})
	got := table.Expand("appeal")
	want := []string{"appeal", "judicial review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand(appeal) = %v, want %v", got, want)
	}
	// The built-in entries survive the merge.
	if got := table.Expand("tort"); len(got) < 2 {
		t.Errorf("built-in entry lost after merge: %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	content := []byte("evidence:\n  - proof\n  - testimony\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(entries["evidence"], []string{"proof", "testimony"}) {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestInferCategories(t *testing.T) {
	tests := []struct {
		name   string
		terms  []string
		phrase string
		want   []string
	}{
		{
			name:   "single word hint",
			terms:  []string{"tort", "liability"},
			phrase: "tort liability",
			want:   []string{"Tort Law"},
		},
		{
			name:   "multi word hint matched against phrase",
			terms:  []string{"fundamental", "rights"},
			phrase: "fundamental rights of citizens",
			want:   []string{"Constitutional Law"},
		},
		{
			name:   "multiple categories sorted",
			terms:  []string{"contract", "theft"},
			phrase: "contract theft",
			want:   []string{"Contract Law", "Criminal Law"},
		},
		{
			name:   "no hints",
			terms:  []string{"procedure", "schedule"},
			phrase: "procedure schedule",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCategories(tt.terms, tt.phrase)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InferCategories(%v, %q) = %v, want %v", tt.terms, tt.phrase, got, tt.want)
			}
		})
	}
}

func TestInferCategoriesNoPartialPhraseMatch(t *testing.T) {
	// "fundamental rightsholder" must not trigger the "fundamental rights"
	// hint: phrase matching is word-boundary only.
	got := InferCategories([]string{"fundamental", "rightsholder"}, "fundamental rightsholder")
	if len(got) != 0 {
		t.Errorf("expected no categories, got %v", got)
	}
}
