package synonym

import (
	"sort"
	"strings"
)

// categoryHints maps query keywords to the legal category they suggest.
// Multi-word keys are matched against the normalized query phrase; single
// words are matched against individual query terms.
var categoryHints = map[string]string{
	"constitution":         "Constitutional Law",
	"constitutional":       "Constitutional Law",
	"amendment":            "Constitutional Law",
	"fundamental rights":   "Constitutional Law",
	"directive principles": "Constitutional Law",

	"crime":    "Criminal Law",
	"criminal": "Criminal Law",
	"penal":    "Criminal Law",
	"murder":   "Criminal Law",
	"theft":    "Criminal Law",
	"bail":     "Criminal Law",
	"offence":  "Criminal Law",

	"contract":      "Contract Law",
	"agreement":     "Contract Law",
	"consideration": "Contract Law",

	"tort":       "Tort Law",
	"negligence": "Tort Law",
	"defamation": "Tort Law",
	"nuisance":   "Tort Law",

	"marriage": "Family Law",
	"divorce":  "Family Law",
	"custody":  "Family Law",
	"adoption": "Family Law",

	"property": "Property Law",
	"easement": "Property Law",
	"lease":    "Property Law",
	"mortgage": "Property Law",
}

// InferCategories returns the distinct legal categories suggested by the
// query's terms and normalized phrase, sorted ascending. An empty result
// means no category bonus applies.
func InferCategories(terms []string, phrase string) []string {
	found := make(map[string]struct{})
	for _, term := range terms {
		if cat, ok := categoryHints[term]; ok {
			found[cat] = struct{}{}
		}
	}
	for hint, cat := range categoryHints {
		if strings.Contains(hint, " ") && containsPhrase(phrase, hint) {
			found[cat] = struct{}{}
		}
	}
	result := make([]string, 0, len(found))
	for cat := range found {
		result = append(result, cat)
	}
	sort.Strings(result)
	return result
}

// containsPhrase reports whether needle occurs in haystack on word
// boundaries. Both arguments must already be normalized.
func containsPhrase(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
