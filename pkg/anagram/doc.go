// Package anagram provides the in-memory anagram index used by the anagrams CLI.
//
// The package performs no I/O. Words arrive through a [WordSource], are
// normalized, grouped by their canonical [Key] and stored in an immutable
// [Index]. A [Finder] answers lookups against a built index.
//
// # Architecture
//
//	┌───────────────┐
//	│  WordSource   │  (directory of delimited files, test slices, ...)
//	└───────┬───────┘
//	        │ raw words
//	┌───────▼───────┐
//	│    Builder    │  Normalize → Canonicalize → dedupe
//	└───────┬───────┘
//	        │ Build()
//	┌───────▼───────┐
//	│     Index     │  Key → []word, read-only
//	└───────┬───────┘
//	        │ Lookup()
//	┌───────▼───────┐
//	│    Finder     │  FindAnagrams(query)
//	└───────────────┘
//
// # Usage
//
//	idx, stats, err := anagram.Build(ctx, anagram.SliceSource{"listen", "silent"})
//	if err != nil {
//	    return err
//	}
//	words := anagram.NewFinder(idx).FindAnagrams("Tinsel")
//
// # Thread Safety
//
// A built Index is never written again, so Lookup and FindAnagrams may be
// called from any number of goroutines. Builder is not safe for concurrent use.
package anagram
