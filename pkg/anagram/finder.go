package anagram

import (
	"sync/atomic"
)

// Result is the answer to a single query.
type Result struct {
	// Query is the normalized query word.
	Query string `json:"query"`
	// Key is the canonical key of Query. Empty when Query is empty.
	Key Key `json:"key"`
	// Words are the stored anagrams of Query in build order. The query itself
	// appears only if the word list contained it.
	Words []string `json:"words"`
}

// Empty reports whether the query matched nothing.
func (r Result) Empty() bool {
	return len(r.Words) == 0
}

// Searcher answers anagram queries.
type Searcher interface {
	Find(query string) Result
}

// Finder answers queries against an Index. The index can be replaced with
// Swap while queries are in flight; each query sees exactly one index.
type Finder struct {
	index atomic.Pointer[Index]
}

// NewFinder returns a Finder over idx. A nil idx behaves as an empty index.
func NewFinder(idx *Index) *Finder {
	f := &Finder{}
	f.Swap(idx)
	return f
}

// Index returns the index currently answering queries.
func (f *Finder) Index() *Index {
	return f.index.Load()
}

// Swap installs idx and returns the previous index.
func (f *Finder) Swap(idx *Index) *Index {
	if idx == nil {
		idx = Empty()
	}
	return f.index.Swap(idx)
}

// Find normalizes query and returns every stored word sharing its key.
func (f *Finder) Find(query string) Result {
	return find(f.index.Load(), query)
}

// FindAnagrams is Find without the metadata.
func (f *Finder) FindAnagrams(query string) []string {
	return f.Find(query).Words
}

func find(idx *Index, query string) Result {
	key, word, ok := KeyOf(query)
	if !ok {
		return Result{Query: word, Words: []string{}}
	}
	return Result{Query: word, Key: key, Words: idx.Lookup(key)}
}
