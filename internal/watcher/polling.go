package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// snapshotDir records every matching regular file directly inside dir.
// Symlinks are followed.
func snapshotDir(dir string, match func(string) bool) (map[string]fileSnapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	state := make(map[string]fileSnapshot, len(entries))
	for _, e := range entries {
		if !match(e.Name()) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		state[e.Name()] = fileSnapshot{modTime: info.ModTime(), size: info.Size()}
	}
	return state, nil
}

// diffSnapshots returns the events that turn prev into next.
func diffSnapshots(prev, next map[string]fileSnapshot, now time.Time) []FileEvent {
	var events []FileEvent
	for name, snap := range next {
		old, ok := prev[name]
		switch {
		case !ok:
			events = append(events, FileEvent{Name: name, Operation: OpCreate, Timestamp: now})
		case !old.modTime.Equal(snap.modTime) || old.size != snap.size:
			events = append(events, FileEvent{Name: name, Operation: OpModify, Timestamp: now})
		}
	}
	for name := range prev {
		if _, ok := next[name]; !ok {
			events = append(events, FileEvent{Name: name, Operation: OpDelete, Timestamp: now})
		}
	}
	return events
}
