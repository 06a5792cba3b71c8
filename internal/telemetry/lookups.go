// Package telemetry keeps in-process statistics about anagram lookups.
// Nothing is persisted or reported anywhere; the numbers live and die with
// the process.
package telemetry

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LatencyBucket is a latency histogram bucket. Lookups are map reads, so the
// buckets are in microseconds.
type LatencyBucket string

const (
	BucketU10  LatencyBucket = "u10"  // <10µs
	BucketU100 LatencyBucket = "u100" // 10-100µs
	BucketMs1  LatencyBucket = "ms1"  // 100µs-1ms
	BucketMs10 LatencyBucket = "ms10" // 1-10ms
	BucketSlow LatencyBucket = "slow" // >=10ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	switch {
	case d < 10*time.Microsecond:
		return BucketU10
	case d < 100*time.Microsecond:
		return BucketU100
	case d < time.Millisecond:
		return BucketMs1
	case d < 10*time.Millisecond:
		return BucketMs10
	default:
		return BucketSlow
	}
}

// LookupEvent is one answered lookup.
type LookupEvent struct {
	// Query is the normalized query word.
	Query       string
	ResultCount int
	Latency     time.Duration
}

// Ring is a fixed-capacity FIFO; the oldest item is overwritten when full.
type Ring[T any] struct {
	items []T
	head  int
	size  int
}

// NewRing creates a ring holding up to capacity items.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 100
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Add appends item, evicting the oldest when full.
func (r *Ring[T]) Add(item T) {
	r.items[r.head] = item
	r.head = (r.head + 1) % len(r.items)
	if r.size < len(r.items) {
		r.size++
	}
}

// Items returns the contents oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, 0, r.size)
	if r.size < len(r.items) {
		return append(out, r.items[:r.size]...)
	}
	out = append(out, r.items[r.head:]...)
	return append(out, r.items[:r.head]...)
}

// Len returns the number of items held.
func (r *Ring[T]) Len() int {
	return r.size
}

// QueryCount is a query and how often it was looked up.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Snapshot is an immutable copy of the collected statistics.
type Snapshot struct {
	TotalLookups        int64                   `json:"total_lookups"`
	ZeroResultCount     int64                   `json:"zero_result_count"`
	RepeatCount         int64                   `json:"repeat_count"`
	TopQueries          []QueryCount            `json:"top_queries"`
	RecentMisses        []string                `json:"recent_misses"`
	LatencyDistribution map[LatencyBucket]int64 `json:"latency_distribution"`
	Since               string                  `json:"since"`
}

// ZeroResultPercentage returns the share of lookups that found nothing.
func (s Snapshot) ZeroResultPercentage() float64 {
	if s.TotalLookups == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalLookups) * 100
}

// Config bounds the memory the collector uses.
type Config struct {
	// TrackedQueries is how many distinct queries are counted (LRU).
	TrackedQueries int
	// RecentMisses is how many zero-result queries are remembered.
	RecentMisses int
	// TopN is how many queries Snapshot reports.
	TopN int
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		TrackedQueries: 500,
		RecentMisses:   20,
		TopN:           10,
	}
}

// Lookups collects lookup statistics. Safe for concurrent use.
type Lookups struct {
	mu sync.Mutex

	cfg       Config
	counts    *lru.Cache[string, int64]
	misses    *Ring[string]
	latencies map[LatencyBucket]int64
	total     int64
	zero      int64
	repeats   int64
	since     time.Time
}

// NewLookups creates a collector. Zero fields of cfg take defaults.
func NewLookups(cfg Config) *Lookups {
	def := DefaultConfig()
	if cfg.TrackedQueries <= 0 {
		cfg.TrackedQueries = def.TrackedQueries
	}
	if cfg.RecentMisses <= 0 {
		cfg.RecentMisses = def.RecentMisses
	}
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}

	counts, _ := lru.New[string, int64](cfg.TrackedQueries)
	return &Lookups{
		cfg:       cfg,
		counts:    counts,
		misses:    NewRing[string](cfg.RecentMisses),
		latencies: make(map[LatencyBucket]int64),
		since:     time.Now(),
	}
}

// Record adds one lookup.
func (l *Lookups) Record(e LookupEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.total++
	l.latencies[LatencyToBucket(e.Latency)]++
	if e.ResultCount == 0 {
		l.zero++
		l.misses.Add(e.Query)
	}

	n, seen := l.counts.Get(e.Query)
	if seen {
		l.repeats++
	}
	l.counts.Add(e.Query, n+1)
}

// Snapshot returns the statistics so far.
func (l *Lookups) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	top := make([]QueryCount, 0, l.counts.Len())
	for _, q := range l.counts.Keys() {
		if n, ok := l.counts.Peek(q); ok {
			top = append(top, QueryCount{Query: q, Count: n})
		}
	}
	slices.SortFunc(top, func(a, b QueryCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Query, b.Query)
	})
	if len(top) > l.cfg.TopN {
		top = top[:l.cfg.TopN]
	}

	latencies := make(map[LatencyBucket]int64, len(l.latencies))
	for k, v := range l.latencies {
		latencies[k] = v
	}

	return Snapshot{
		TotalLookups:        l.total,
		ZeroResultCount:     l.zero,
		RepeatCount:         l.repeats,
		TopQueries:          top,
		RecentMisses:        l.misses.Items(),
		LatencyDistribution: latencies,
		Since:               l.since.Format(time.RFC3339),
	}
}
