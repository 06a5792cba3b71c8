package anagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedFinder_MatchesUncached(t *testing.T) {
	idx := buildIndex(t, "listen", "silent", "enlist", "hello")
	plain := NewFinder(idx)
	cached, err := NewCachedFinder(NewFinder(idx), 8)
	require.NoError(t, err)

	for _, q := range []string{"tinsel", "TINSEL", "hello", "world", "", "  "} {
		assert.Equal(t, plain.Find(q), cached.Find(q), q)
		// second call is served from cache
		assert.Equal(t, plain.Find(q), cached.Find(q), q)
	}
}

func TestCachedFinder_CachesByKey(t *testing.T) {
	// Given: a cached finder
	cached, err := NewCachedFinder(NewFinder(buildIndex(t, "dog", "god")), 8)
	require.NoError(t, err)

	// When: querying two permutations of the same word
	cached.Find("dog")
	res := cached.Find("GOD")

	// Then: one cache entry serves both, with the second query's own text
	assert.Equal(t, 1, cached.Len())
	assert.Equal(t, "god", res.Query)
	assert.Equal(t, []string{"dog", "god"}, res.Words)
}

func TestCachedFinder_ResultIsCopy(t *testing.T) {
	cached, err := NewCachedFinder(NewFinder(buildIndex(t, "dog", "god")), 8)
	require.NoError(t, err)

	first := cached.FindAnagrams("dog")
	first[0] = "cat"

	assert.Equal(t, []string{"dog", "god"}, cached.FindAnagrams("dog"))
}

func TestCachedFinder_SwapInvalidates(t *testing.T) {
	cached, err := NewCachedFinder(NewFinder(buildIndex(t, "cat")), 8)
	require.NoError(t, err)
	require.Equal(t, []string{"cat"}, cached.FindAnagrams("act"))

	cached.Swap(buildIndex(t, "cat", "act"))

	assert.Equal(t, []string{"cat", "act"}, cached.FindAnagrams("act"))
	assert.Equal(t, 2, cached.Index().WordCount())
}

func TestCachedFinder_DefaultSize(t *testing.T) {
	cached, err := NewCachedFinder(NewFinder(nil), 0)
	require.NoError(t, err)

	assert.Empty(t, cached.FindAnagrams("x"))
}

func TestSearcherImplementations(t *testing.T) {
	var _ Searcher = (*Finder)(nil)
	var _ Searcher = (*CachedFinder)(nil)
}
