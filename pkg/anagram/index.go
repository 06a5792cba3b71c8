package anagram

import (
	"slices"
)

// Index is an immutable multimap from Key to the words sharing that key.
// Words under a key keep the order in which the builder first saw them.
type Index struct {
	classes map[Key][]string
	words   int
}

// IndexStats summarizes a built index.
type IndexStats struct {
	// Keys is the number of distinct permutation classes.
	Keys int `json:"keys"`

	// Words is the number of stored words across all classes.
	Words int `json:"words"`

	// LargestClass is the key holding the most words. Ties go to the
	// smallest key so the value is stable across builds.
	LargestClass Key `json:"largest_class"`

	// LargestClassSize is the number of words under LargestClass.
	LargestClassSize int `json:"largest_class_size"`

	// Singletons counts classes holding exactly one word.
	Singletons int `json:"singletons"`
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{classes: map[Key][]string{}}
}

// Lookup returns a copy of the words stored under key.
// The result is empty, never nil, when the key is unknown.
func (x *Index) Lookup(key Key) []string {
	if x == nil {
		return []string{}
	}
	words, ok := x.classes[key]
	if !ok {
		return []string{}
	}
	return slices.Clone(words)
}

// Contains reports whether word (already normalized) is stored.
func (x *Index) Contains(word string) bool {
	if x == nil || word == "" {
		return false
	}
	return slices.Contains(x.classes[Canonicalize(word)], word)
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.classes)
}

// WordCount returns the number of stored words.
func (x *Index) WordCount() int {
	if x == nil {
		return 0
	}
	return x.words
}

// Keys returns every key in ascending order.
func (x *Index) Keys() []Key {
	if x == nil {
		return nil
	}
	keys := make([]Key, 0, len(x.classes))
	for k := range x.classes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Stats computes summary statistics over the index.
func (x *Index) Stats() IndexStats {
	stats := IndexStats{Keys: x.Len(), Words: x.WordCount()}
	for _, k := range x.Keys() {
		n := len(x.classes[k])
		if n == 1 {
			stats.Singletons++
		}
		if n > stats.LargestClassSize {
			stats.LargestClass = k
			stats.LargestClassSize = n
		}
	}
	return stats
}

// Equal reports whether both indices hold the same keys with the same words
// per key, ignoring order within a key.
func (x *Index) Equal(other *Index) bool {
	if x.Len() != other.Len() || x.WordCount() != other.WordCount() {
		return false
	}
	if x.Len() == 0 {
		return true
	}
	for k, words := range x.classes {
		theirs, ok := other.classes[k]
		if !ok || len(theirs) != len(words) {
			return false
		}
		a := slices.Clone(words)
		b := slices.Clone(theirs)
		slices.Sort(a)
		slices.Sort(b)
		if !slices.Equal(a, b) {
			return false
		}
	}
	return true
}
