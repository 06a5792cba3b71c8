package anagram

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of permutation classes CachedFinder keeps.
const DefaultCacheSize = 1024

type cacheEntry struct {
	index *Index
	words []string
}

// CachedFinder wraps a Finder with an LRU cache keyed by canonical key, so
// repeated queries for any permutation of a word skip the lookup.
// Entries remember the index they came from and are ignored after a Swap.
type CachedFinder struct {
	inner *Finder
	cache *lru.Cache[Key, cacheEntry]
}

// NewCachedFinder creates a cached finder. size <= 0 uses DefaultCacheSize.
func NewCachedFinder(inner *Finder, size int) (*CachedFinder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[Key, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CachedFinder{inner: inner, cache: cache}, nil
}

// Find implements Searcher.
func (c *CachedFinder) Find(query string) Result {
	key, word, ok := KeyOf(query)
	if !ok {
		return Result{Query: word, Words: []string{}}
	}

	idx := c.inner.Index()
	if entry, hit := c.cache.Get(key); hit && entry.index == idx {
		return Result{Query: word, Key: key, Words: append([]string{}, entry.words...)}
	}

	words := idx.Lookup(key)
	c.cache.Add(key, cacheEntry{index: idx, words: words})
	return Result{Query: word, Key: key, Words: append([]string{}, words...)}
}

// FindAnagrams is Find without the metadata.
func (c *CachedFinder) FindAnagrams(query string) []string {
	return c.Find(query).Words
}

// Swap installs a new index on the inner finder and drops cached entries.
func (c *CachedFinder) Swap(idx *Index) *Index {
	prev := c.inner.Swap(idx)
	c.cache.Purge()
	return prev
}

// Index returns the index currently answering queries.
func (c *CachedFinder) Index() *Index {
	return c.inner.Index()
}

// Len returns the number of cached classes.
func (c *CachedFinder) Len() int {
	return c.cache.Len()
}
