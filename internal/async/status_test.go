package async

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/anagrams/internal/wordsource"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

func TestIndexProgress_StartsBuilding(t *testing.T) {
	p := NewIndexProgress("/dict")

	snap := p.Snapshot()

	assert.True(t, p.IsBuilding())
	assert.Equal(t, "building", snap.Status)
	assert.Equal(t, "/dict", snap.Folder)
	assert.Equal(t, 0, snap.Builds)
	assert.Empty(t, snap.LastBuilt)
}

func TestIndexProgress_SetReady(t *testing.T) {
	// Given: a tracker with a build in flight
	p := NewIndexProgress("/dict")

	// When: the build finishes
	p.SetReady(BuildOutcome{
		Index:    anagram.IndexStats{Keys: 3, Words: 5},
		Build:    anagram.BuildStats{Seen: 6, Indexed: 5, Duplicates: 1},
		Source:   wordsource.Stats{Files: 2, Rows: 6},
		Duration: 1500 * time.Millisecond,
	})

	// Then: the snapshot reports the outcome
	snap := p.Snapshot()
	assert.False(t, p.IsBuilding())
	assert.Equal(t, "ready", snap.Status)
	assert.Equal(t, 1, snap.Builds)
	assert.Equal(t, 3, snap.Index.Keys)
	assert.Equal(t, 2, snap.Source.Files)
	assert.Equal(t, int64(1500), snap.LastDurationMs)
	assert.NotEmpty(t, snap.LastBuilt)
	assert.Zero(t, snap.ElapsedSeconds)
}

func TestIndexProgress_FailedRebuildKeepsLastOutcome(t *testing.T) {
	p := NewIndexProgress("/dict")
	p.SetReady(BuildOutcome{Index: anagram.IndexStats{Keys: 7}})

	p.Start()
	assert.True(t, p.IsBuilding())
	p.SetError("permission denied")

	snap := p.Snapshot()
	assert.Equal(t, "error", snap.Status)
	assert.Equal(t, "permission denied", snap.ErrorMessage)
	assert.Equal(t, 1, snap.Failures)
	assert.Equal(t, 7, snap.Index.Keys)

	p.Start()
	p.SetReady(BuildOutcome{Index: anagram.IndexStats{Keys: 8}})
	snap = p.Snapshot()
	assert.Equal(t, "ready", snap.Status)
	assert.Empty(t, snap.ErrorMessage)
	assert.Equal(t, 2, snap.Builds)
}
