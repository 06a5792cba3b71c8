package anagram

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		source []string
		query  string
		want   []string
	}{
		{
			name:   "listen family",
			source: []string{"listen", "silent", "enlist", "hello"},
			query:  "tinsel",
			want:   []string{"listen", "silent", "enlist"},
		},
		{
			name:   "uppercase query",
			source: []string{"cat", "act", "tac"},
			query:  "ACT",
			want:   []string{"cat", "act", "tac"},
		},
		{
			name:   "query absent from source",
			source: []string{"apple", "pale", "leap"},
			query:  "peal",
			want:   []string{"pale", "leap"},
		},
		{
			name:   "no anagrams",
			source: []string{"hello"},
			query:  "world",
			want:   []string{},
		},
		{
			name:   "blank row in source",
			source: []string{"", "dog", "  ", "god"},
			query:  "god",
			want:   []string{"dog", "god"},
		},
		{
			name:   "duplicates collapsed",
			source: []string{"a", "a"},
			query:  "a",
			want:   []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(buildIndex(t, tt.source...))

			got := f.FindAnagrams(tt.query)

			assert.ElementsMatch(t, tt.want, got)
			assert.NotNil(t, got)
		})
	}
}

func TestFinder_Find_ReportsNormalizedQuery(t *testing.T) {
	f := NewFinder(buildIndex(t, "listen", "silent"))

	res := f.Find("  SILENT ")

	assert.Equal(t, "silent", res.Query)
	assert.Equal(t, Key("eilnst"), res.Key)
	assert.Equal(t, []string{"listen", "silent"}, res.Words)
	assert.False(t, res.Empty())
}

func TestFinder_PermutationInvariant(t *testing.T) {
	f := NewFinder(buildIndex(t, "listen", "silent", "enlist", "tinsel", "inlets", "hello"))

	want := f.FindAnagrams("listen")
	for _, q := range []string{"silent", "tinsel", "nliste", "tsilne", "LISTEN", "Listen", " listen "} {
		assert.Equal(t, want, f.FindAnagrams(q), q)
	}
}

func TestFinder_Boundaries(t *testing.T) {
	f := NewFinder(buildIndex(t, "a", "b", "ab", "ba"))

	// Single character
	assert.Equal(t, []string{"a"}, f.FindAnagrams("a"))
	assert.Equal(t, []string{"a"}, f.FindAnagrams("A"))

	// Whitespace around the query
	assert.Equal(t, f.FindAnagrams("ab"), f.FindAnagrams("\t ab \n"))

	// Empty after trimming
	res := f.Find("   ")
	assert.True(t, res.Empty())
	assert.Equal(t, "", res.Query)
	assert.Equal(t, []string{}, f.FindAnagrams(""))
}

func TestFinder_QueryIncludedOnlyIfPresent(t *testing.T) {
	f := NewFinder(buildIndex(t, "pale", "leap"))

	assert.NotContains(t, f.FindAnagrams("peal"), "peal")
	assert.Contains(t, f.FindAnagrams("pale"), "pale")
}

func TestFinder_NilIndex(t *testing.T) {
	f := NewFinder(nil)

	assert.Empty(t, f.FindAnagrams("cat"))
	assert.Equal(t, 0, f.Index().Len())
}

func TestFinder_Swap(t *testing.T) {
	// Given: a finder over one index
	f := NewFinder(buildIndex(t, "cat"))
	require.Equal(t, []string{"cat"}, f.FindAnagrams("act"))

	// When: a new index is swapped in
	prev := f.Swap(buildIndex(t, "act", "tac"))

	// Then: queries see the new index and the old one is untouched
	assert.Equal(t, []string{"act", "tac"}, f.FindAnagrams("cat"))
	assert.Equal(t, []string{"cat"}, prev.Lookup("act"))
}

func TestFinder_ConcurrentFindDuringSwap(t *testing.T) {
	small := buildIndex(t, "cat")
	large := buildIndex(t, "cat", "act", "tac")
	f := NewFinder(small)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				n := len(f.FindAnagrams("cat"))
				assert.True(t, n == 1 || n == 3, "saw %d words", n)
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			f.Swap(large)
		} else {
			f.Swap(small)
		}
	}
	wg.Wait()
}
