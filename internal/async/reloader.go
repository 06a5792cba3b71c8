package async

import (
	"context"
	"log/slog"
	"sync"
)

// ReloadFunc rebuilds the index and installs it.
type ReloadFunc func(ctx context.Context) error

// Reloader runs rebuilds on a background goroutine, one at a time.
// Triggers that arrive while a rebuild runs are coalesced into a single
// follow-up rebuild.
type Reloader struct {
	reload ReloadFunc
	logger *slog.Logger

	trigger  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}

	mu      sync.Mutex
	running bool
	runs    int
	lastErr error
}

// NewReloader creates a reloader around fn.
func NewReloader(fn ReloadFunc) *Reloader {
	return &Reloader{
		reload:  fn,
		logger:  slog.Default(),
		trigger: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start begins the reload loop. It is non-blocking; a second call is a no-op.
func (r *Reloader) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.run(ctx)
}

// Trigger requests a rebuild without blocking.
func (r *Reloader) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
		// a rebuild is already queued
	}
}

func (r *Reloader) run(ctx context.Context) {
	defer close(r.doneCh)
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-r.trigger:
			err := r.reload(ctx)
			r.mu.Lock()
			r.runs++
			r.lastErr = err
			r.mu.Unlock()
			if err != nil && ctx.Err() == nil {
				r.logger.Warn("index_reload_failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Stop signals the loop to exit and waits for an in-flight rebuild.
func (r *Reloader) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	r.stopOnce.Do(func() { close(r.stopCh) })
	<-r.doneCh
}

// Runs returns how many rebuilds have finished and the last one's error.
func (r *Reloader) Runs() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs, r.lastErr
}
