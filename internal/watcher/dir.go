package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Type names the mechanism a DirWatcher uses.
type Type string

const (
	// TypeNone is reported before Start picks a mechanism.
	TypeNone Type = "none"
	// TypeFSNotify uses kernel notifications.
	TypeFSNotify Type = "fsnotify"
	// TypePolling rescans the folder on an interval.
	TypePolling Type = "polling"
)

// DirWatcher watches the direct children of one folder.
type DirWatcher struct {
	opts      Options
	debouncer *Debouncer
	events    chan []FileEvent
	errors    chan error
	stopCh    chan struct{}
	stopOnce  sync.Once
	dropped   atomic.Int64

	mu      sync.RWMutex
	stopped bool
	kind    Type
}

// New creates a watcher. Nothing is watched until Start.
func New(opts Options) (*DirWatcher, error) {
	opts = opts.WithDefaults()
	w := &DirWatcher{
		opts:      opts,
		debouncer: NewDebouncer(opts.DebounceWindow),
		events:    make(chan []FileEvent, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
		kind:      TypeNone,
	}
	go w.forward()
	return w, nil
}

// Events returns debounced batches. Closed by Stop.
func (w *DirWatcher) Events() <-chan []FileEvent {
	return w.events
}

// Errors returns non-fatal watch errors. Closed by Stop.
func (w *DirWatcher) Errors() <-chan error {
	return w.errors
}

// Dropped returns how many batches were discarded because Events was full.
func (w *DirWatcher) Dropped() int64 {
	return w.dropped.Load()
}

// WatcherType reports the mechanism in use.
func (w *DirWatcher) WatcherType() Type {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.kind
}

// Start watches dir until ctx is cancelled or Stop is called. It blocks.
func (w *DirWatcher) Start(ctx context.Context, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	if !w.opts.ForcePolling {
		fw, err := fsnotify.NewWatcher()
		if err == nil {
			if err = fw.Add(abs); err == nil {
				w.setKind(TypeFSNotify)
				slog.Debug("watcher_started", slog.String("type", string(TypeFSNotify)), slog.String("dir", abs))
				return w.runNotify(ctx, fw)
			}
			_ = fw.Close()
		}
		slog.Warn("fsnotify_unavailable_using_polling", slog.String("dir", abs), slog.String("error", err.Error()))
	}

	return w.runPolling(ctx, abs)
}

// Stop stops watching and closes the Events and Errors channels.
// Safe to call multiple times.
func (w *DirWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.debouncer.Stop()

		w.mu.Lock()
		w.stopped = true
		close(w.errors)
		w.mu.Unlock()
	})
	return nil
}

func (w *DirWatcher) setKind(t Type) {
	w.mu.Lock()
	w.kind = t
	w.mu.Unlock()
}

func (w *DirWatcher) runNotify(ctx context.Context, fw *fsnotify.Watcher) error {
	defer func() { _ = fw.Close() }()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.sendError(err)
		}
	}
}

func (w *DirWatcher) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !w.opts.Match(name) {
		return
	}

	var op Operation
	switch {
	case ev.Has(fsnotify.Create):
		op = OpCreate
	case ev.Has(fsnotify.Write):
		op = OpModify
	case ev.Has(fsnotify.Remove):
		op = OpDelete
	case ev.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.debouncer.Add(FileEvent{Name: name, Operation: op, Timestamp: time.Now()})
}

func (w *DirWatcher) runPolling(ctx context.Context, dir string) error {
	state, err := snapshotDir(dir, w.opts.Match)
	if err != nil {
		return fmt.Errorf("perform initial scan: %w", err)
	}
	w.setKind(TypePolling)
	slog.Debug("watcher_started", slog.String("type", string(TypePolling)), slog.String("dir", dir))

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			next, err := snapshotDir(dir, w.opts.Match)
			if err != nil {
				w.sendError(err)
				continue
			}
			for _, e := range diffSnapshots(state, next, time.Now()) {
				w.debouncer.Add(e)
			}
			state = next
		}
	}
}

// forward moves debounced batches to Events and closes it once the
// debouncer is stopped.
func (w *DirWatcher) forward() {
	defer close(w.events)
	for batch := range w.debouncer.Output() {
		select {
		case w.events <- batch:
		default:
			w.dropped.Add(1)
			slog.Warn("watcher_batch_dropped", slog.Int("batch_size", len(batch)))
		}
	}
}

func (w *DirWatcher) sendError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return
	}
	select {
	case w.errors <- err:
	default:
	}
}
