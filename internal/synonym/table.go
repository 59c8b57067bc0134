// Package synonym holds the static legal vocabulary used for query
// expansion: a canonical-term → related-terms table consulted in both
// directions, and the keyword hints used to infer a legal category from a
// query. Everything here is loaded once at startup and read-only afterwards.
package synonym

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table expands a query term into its legal-domain equivalents. Lookup is
// exact-match only; a term with no entry expands to just itself.
type Table struct {
	expansions map[string][]string
}

// Default returns the built-in legal synonym entries. Keys are canonical
// terms; values are equivalent or closely related phrases a layperson or a
// formal text might use instead.
func Default() map[string][]string {
	return map[string][]string{
		"tort":         {"civil wrong"},
		"negligence":   {"duty of care breach", "carelessness"},
		"contract":     {"agreement", "binding promise"},
		"constitution": {"supreme law"},
		"crime":        {"offence", "criminal act"},
		"plaintiff":    {"claimant", "complainant"},
		"defendant":    {"accused", "respondent"},
		"damages":      {"compensation", "monetary relief"},
		"bail":         {"pretrial release"},
		"writ":         {"court order"},
		"liability":    {"legal responsibility"},
		"statute":      {"enactment", "legislation"},
		"precedent":    {"case law", "judicial decision"},
		"custody":      {"guardianship"},
		"divorce":      {"dissolution of marriage"},
		"theft":        {"larceny", "stealing"},
		"defamation":   {"libel", "slander"},
		"easement":     {"right of way"},
	}
}

// LoadFile reads additional synonym entries from a YAML file mapping
// canonical terms to lists of related phrases.
func LoadFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synonym file %s: %w", path, err)
	}
	entries := make(map[string][]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing synonym file %s: %w", path, err)
	}
	return entries, nil
}

// NewTable builds a Table from one or more entry maps. Later maps extend
// earlier ones. Every entry is indexed in both directions: looking up a
// canonical term yields its synonyms, and looking up a synonym yields its
// canonical term plus the canonical term's other synonyms.
func NewTable(entryMaps ...map[string][]string) *Table {
	merged := make(map[string][]string)
	for _, entries := range entryMaps {
		for canonical, syns := range entries {
			canonical = normalizeEntry(canonical)
			for _, syn := range syns {
				merged[canonical] = append(merged[canonical], normalizeEntry(syn))
			}
		}
	}

	expansions := make(map[string]map[string]struct{})
	link := func(from, to string) {
		if from == to {
			return
		}
		set, ok := expansions[from]
		if !ok {
			set = make(map[string]struct{})
			expansions[from] = set
		}
		set[to] = struct{}{}
	}

	for canonical, syns := range merged {
		for _, syn := range syns {
			link(canonical, syn)
			link(syn, canonical)
			// Synonyms of the same canonical term expand to each other.
			for _, other := range syns {
				link(syn, other)
			}
		}
	}

	t := &Table{expansions: make(map[string][]string, len(expansions))}
	for term, set := range expansions {
		list := make([]string, 0, len(set))
		for s := range set {
			list = append(list, s)
		}
		sort.Strings(list)
		t.expansions[term] = list
	}
	return t
}

// Expand returns the term itself followed by its legal-domain equivalents in
// deterministic order. A term without an entry degrades to {term}.
func (t *Table) Expand(term string) []string {
	term = normalizeEntry(term)
	related := t.expansions[term]
	result := make([]string, 0, len(related)+1)
	result = append(result, term)
	result = append(result, related...)
	return result
}

// Size returns the number of terms with at least one expansion.
func (t *Table) Size() int {
	return len(t.expansions)
}

func normalizeEntry(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
