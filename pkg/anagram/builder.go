package anagram

import (
	"context"
	"fmt"
	"slices"
)

// WordSource yields raw candidate words. Implementations call yield once per
// word, in a deterministic order, and stop at the first error yield returns.
// Only I/O-level failures should be returned; malformed records are the
// source's to skip.
type WordSource interface {
	Words(ctx context.Context, yield func(raw string) error) error
}

// SliceSource is a WordSource over an in-memory list.
type SliceSource []string

// Words implements WordSource.
func (s SliceSource) Words(ctx context.Context, yield func(raw string) error) error {
	for _, w := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := yield(w); err != nil {
			return err
		}
	}
	return nil
}

// SourceFunc adapts a function to WordSource.
type SourceFunc func(ctx context.Context, yield func(raw string) error) error

// Words implements WordSource.
func (f SourceFunc) Words(ctx context.Context, yield func(raw string) error) error {
	return f(ctx, yield)
}

// BuildStats counts what happened to each raw word during a build.
type BuildStats struct {
	// Seen is the number of raw words received.
	Seen int `json:"seen"`
	// Indexed is the number of words stored.
	Indexed int `json:"indexed"`
	// Blank is the number of words that were empty after trimming.
	Blank int `json:"blank"`
	// Duplicates is the number of words already stored under their key.
	Duplicates int `json:"duplicates"`
}

// Builder accumulates words into a new Index. It is not safe for
// concurrent use.
type Builder struct {
	classes map[Key][]string
	stats   BuildStats
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{classes: make(map[Key][]string)}
}

// Add normalizes raw and stores it under its key. It returns false when the
// word was blank or already present.
func (b *Builder) Add(raw string) bool {
	b.stats.Seen++

	key, word, ok := KeyOf(raw)
	if !ok {
		b.stats.Blank++
		return false
	}

	class := b.classes[key]
	if slices.Contains(class, word) {
		b.stats.Duplicates++
		return false
	}

	b.classes[key] = append(class, word)
	b.stats.Indexed++
	return true
}

// Stats returns the counters accumulated so far.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

// Build hands the accumulated entries to a new Index and resets the builder.
// The builder keeps no reference to the returned index.
func (b *Builder) Build() *Index {
	idx := &Index{classes: b.classes, words: b.stats.Indexed}
	b.classes = make(map[Key][]string)
	b.stats = BuildStats{}
	return idx
}

// Build drains src into a new Index. On error the partial index is
// discarded and only the error is returned.
func Build(ctx context.Context, src WordSource) (*Index, BuildStats, error) {
	if src == nil {
		return nil, BuildStats{}, fmt.Errorf("word source is required")
	}

	b := NewBuilder()
	err := src.Words(ctx, func(raw string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.Add(raw)
		return nil
	})
	if err != nil {
		return nil, BuildStats{}, fmt.Errorf("build anagram index: %w", err)
	}

	stats := b.Stats()
	return b.Build(), stats, nil
}
