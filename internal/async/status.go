// Package async tracks dictionary builds and runs rebuilds in the background.
package async

import (
	"sync"
	"time"

	"github.com/Aman-CERP/anagrams/internal/wordsource"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

// IndexingStatus represents the overall build state.
type IndexingStatus string

const (
	// StatusBuilding indicates a build is in progress.
	StatusBuilding IndexingStatus = "building"
	// StatusReady indicates an index is available for lookups.
	StatusReady IndexingStatus = "ready"
	// StatusError indicates the most recent build failed.
	StatusError IndexingStatus = "error"
)

// IndexProgressSnapshot is an immutable snapshot of build progress.
type IndexProgressSnapshot struct {
	Status         string             `json:"status"`
	Folder         string             `json:"folder"`
	Builds         int                `json:"builds"`
	Failures       int                `json:"failures"`
	LastBuilt      string             `json:"last_built,omitempty"`
	LastDurationMs int64              `json:"last_duration_ms"`
	ElapsedSeconds int                `json:"elapsed_seconds"`
	Index          anagram.IndexStats `json:"index"`
	Build          anagram.BuildStats `json:"build"`
	Source         wordsource.Stats   `json:"source"`
	ErrorMessage   string             `json:"error_message,omitempty"`
}

// BuildOutcome is what a finished build reports.
type BuildOutcome struct {
	Index    anagram.IndexStats
	Build    anagram.BuildStats
	Source   wordsource.Stats
	Duration time.Duration
}

// IndexProgress provides thread-safe tracking of dictionary builds.
// A failed rebuild keeps the counters of the last good build; the index
// serving lookups is unchanged.
type IndexProgress struct {
	mu sync.RWMutex

	status       IndexingStatus
	folder       string
	builds       int
	failures     int
	startTime    time.Time
	lastBuilt    time.Time
	lastOutcome  BuildOutcome
	errorMessage string
}

// NewIndexProgress creates a tracker for folder in the building state.
func NewIndexProgress(folder string) *IndexProgress {
	return &IndexProgress{
		status:    StatusBuilding,
		folder:    folder,
		startTime: time.Now(),
	}
}

// Start marks a new build as in progress.
func (p *IndexProgress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusBuilding
	p.startTime = time.Now()
}

// SetReady records a successful build.
func (p *IndexProgress) SetReady(outcome BuildOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusReady
	p.builds++
	p.lastBuilt = time.Now()
	p.lastOutcome = outcome
	p.errorMessage = ""
}

// SetError marks the most recent build as failed with an error message.
func (p *IndexProgress) SetError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusError
	p.failures++
	p.errorMessage = message
}

// IsBuilding returns true if a build is in progress.
func (p *IndexProgress) IsBuilding() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.status == StatusBuilding
}

// Snapshot returns an immutable copy of the current state.
func (p *IndexProgress) Snapshot() IndexProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := IndexProgressSnapshot{
		Status:         string(p.status),
		Folder:         p.folder,
		Builds:         p.builds,
		Failures:       p.failures,
		LastDurationMs: p.lastOutcome.Duration.Milliseconds(),
		Index:          p.lastOutcome.Index,
		Build:          p.lastOutcome.Build,
		Source:         p.lastOutcome.Source,
		ErrorMessage:   p.errorMessage,
	}
	if !p.lastBuilt.IsZero() {
		snap.LastBuilt = p.lastBuilt.UTC().Format(time.RFC3339)
	}
	if p.status == StatusBuilding {
		snap.ElapsedSeconds = int(time.Since(p.startTime).Seconds())
	}
	return snap
}
