package cache

import (
	"strings"
	"testing"

	"github.com/jurisgo/lexsearch/internal/query"
)

func TestBuildKeyNormalizesCaseAndWhitespace(t *testing.T) {
	c := &QueryCache{}

	a := c.buildKey(query.SearchRequest{Query: "Fundamental  Rights", Limit: 5})
	b := c.buildKey(query.SearchRequest{Query: "fundamental rights", Limit: 5})
	if a != b {
		t.Errorf("case and whitespace variants must share a key: %q vs %q", a, b)
	}
}

func TestBuildKeyPreservesWordOrder(t *testing.T) {
	c := &QueryCache{}

	// Scoring is order-dependent through the exact-phrase bonus, so reordered
	// queries must not collide.
	a := c.buildKey(query.SearchRequest{Query: "fundamental rights", Limit: 5})
	b := c.buildKey(query.SearchRequest{Query: "rights fundamental", Limit: 5})
	if a == b {
		t.Error("reordered queries must produce distinct keys")
	}
}

func TestBuildKeyVariesByLimitAndFilter(t *testing.T) {
	c := &QueryCache{}
	base := query.SearchRequest{Query: "tort", Limit: 5}

	if c.buildKey(base) == c.buildKey(query.SearchRequest{Query: "tort", Limit: 10}) {
		t.Error("limit must be part of the key")
	}
	if c.buildKey(base) == c.buildKey(query.SearchRequest{Query: "tort", Limit: 5, BookFilter: "torts"}) {
		t.Error("book filter must be part of the key")
	}
}

func TestBuildKeyPrefix(t *testing.T) {
	c := &QueryCache{}
	key := c.buildKey(query.SearchRequest{Query: "tort", Limit: 5})
	if !strings.HasPrefix(key, keyPrefix) {
		t.Errorf("key %q missing prefix %q", key, keyPrefix)
	}
}
