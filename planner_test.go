package fetchz

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/birdayz/fetchz/internal/fetchtest"
)

func frontierKeys(n node) []Key {
	var out []Key
	for _, r := range frontier(n) {
		out = append(out, Key{Source: r.source.name, Identity: r.identity})
	}
	return out
}

func TestFrontier(t *testing.T) {
	src := intSource()
	req := func(id int) Fetch[int] { return Request[int, int](src, id) }

	tests := []struct {
		name     string
		fetch    Fetch[int]
		expected []Key
	}{
		{
			name:     "pure has empty frontier",
			fetch:    Pure(1),
			expected: nil,
		},
		{
			name:     "fail has empty frontier",
			fetch:    Fail[int](errors.New("boom")),
			expected: nil,
		},
		{
			name:     "request is its own frontier",
			fetch:    req(1),
			expected: []Key{{Source: "ints", Identity: 1}},
		},
		{
			name:  "product descends both sides",
			fetch: Map(Product(req(1), req(2)), func(p Pair[int, int]) int { return p.First }),
			expected: []Key{
				{Source: "ints", Identity: 1},
				{Source: "ints", Identity: 2},
			},
		},
		{
			name: "bind hides its continuation",
			fetch: FlatMap(req(1), func(v int) Fetch[int] {
				return req(v + 1)
			}),
			expected: []Key{{Source: "ints", Identity: 1}},
		},
		{
			name: "map does not hide requests",
			fetch: Map(req(3), func(v int) int {
				return v * 2
			}),
			expected: []Key{{Source: "ints", Identity: 3}},
		},
		{
			name: "duplicates are kept in encounter order",
			fetch: Map(Product(req(1), req(1)), func(p Pair[int, int]) int {
				return p.First
			}),
			expected: []Key{
				{Source: "ints", Identity: 1},
				{Source: "ints", Identity: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, frontierKeys(tt.fetch.node))
		})
	}
}

func TestRewriteCollapsesCachedRequests(t *testing.T) {
	src := intSource()
	cache := NewMemoryCache()
	cache.Preload("ints", 1, 11)
	cache.Preload("ints", 2, 22)

	f := Product(Request[int, int](src, 1), Request[int, int](src, 2))

	n, err := rewrite(f.node, cache)
	assert.NoError(t, err)

	p, ok := n.(pureNode)
	assert.True(t, ok)
	assert.Equal(t, Pair[int, int]{First: 11, Second: 22}, p.value.(Pair[int, int]))
}

func TestRewriteExposesBindContinuation(t *testing.T) {
	src := intSource()
	cache := NewMemoryCache()
	cache.Preload("ints", 1, 1)

	f := FlatMap(Request[int, int](src, 1), func(v int) Fetch[int] {
		return Request[int, int](src, v+1)
	})

	n, err := rewrite(f.node, cache)
	assert.NoError(t, err)

	assert.Equal(t, []Key{{Source: "ints", Identity: 2}}, frontierKeys(n))
}

func TestRewriteKeepsUncachedRequests(t *testing.T) {
	src := intSource()

	f := Request[int, int](src, 1)

	n, err := rewrite(f.node, NewMemoryCache())
	assert.NoError(t, err)
	_, ok := n.(reqNode)
	assert.True(t, ok)
}

func TestFrontierAcrossSources(t *testing.T) {
	ints := intSource()
	users := fetchtest.NewMapSource("users", map[int]string{1: "alice"})

	f := Product(Request[int, int](ints, 7), Request[int, string](users, 1))

	assert.Equal(t, []Key{
		{Source: "ints", Identity: 7},
		{Source: "users", Identity: 1},
	}, frontierKeys(f.node))
}
