// Package index builds anagram indexes from a dictionary folder.
//
// Runner ties the word source to the index builder and reports what each
// build read, kept and skipped. Every command that needs an index goes
// through it.
package index

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aman-CERP/anagrams/internal/async"
	"github.com/Aman-CERP/anagrams/internal/config"
	"github.com/Aman-CERP/anagrams/internal/profiling"
	"github.com/Aman-CERP/anagrams/internal/wordsource"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

// RunnerConfig configures a build.
type RunnerConfig struct {
	// Dir is the dictionary folder.
	Dir string

	// Suffix selects files by extension, without the dot.
	Suffix string

	// Delimiter separates fields within a row.
	Delimiter rune

	// Workers bounds concurrent file reads.
	Workers int
}

// RunnerConfigFrom derives a RunnerConfig from loaded configuration.
// A non-empty dir overrides cfg.Dictionary.Dir.
func RunnerConfigFrom(cfg *config.Config, dir string) RunnerConfig {
	if dir == "" {
		dir = cfg.Dictionary.Dir
	}
	return RunnerConfig{
		Dir:       dir,
		Suffix:    cfg.Dictionary.Suffix,
		Delimiter: cfg.DelimiterRune(),
		Workers:   cfg.Dictionary.Workers,
	}
}

// RunnerResult contains the outcome of a build.
type RunnerResult struct {
	// Folder is the dictionary folder that was read.
	Folder string

	// Index is the finished index.
	Index *anagram.Index

	// Build counts what the builder did with each word.
	Build anagram.BuildStats

	// Source counts files and rows the word source read.
	Source wordsource.Stats

	// Duration is the total build time.
	Duration time.Duration
}

// Outcome converts the result for progress tracking.
func (r *RunnerResult) Outcome() async.BuildOutcome {
	return async.BuildOutcome{
		Index:    r.Index.Stats(),
		Build:    r.Build,
		Source:   r.Source,
		Duration: r.Duration,
	}
}

// Runner performs builds for one folder. It is safe to call Run again for a
// fresh index; each call re-reads the folder.
type Runner struct {
	cfg      RunnerConfig
	logger   *slog.Logger
	progress *async.IndexProgress
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithProgress reports each build to p.
func WithProgress(p *async.IndexProgress) RunnerOption {
	return func(r *Runner) {
		r.progress = p
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg RunnerConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Folder returns the dictionary folder.
func (r *Runner) Folder() string {
	return r.cfg.Dir
}

// Run reads the folder and builds a new index. On failure no index is
// returned and the error carries the source's error code.
func (r *Runner) Run(ctx context.Context) (*RunnerResult, error) {
	start := time.Now()
	if r.progress != nil {
		r.progress.Start()
	}

	r.logger.Info("index_build_started",
		slog.String("path", r.cfg.Dir),
		slog.String("suffix", r.cfg.Suffix),
		slog.Int("workers", r.cfg.Workers))

	result, err := r.run(ctx)
	if err != nil {
		if r.progress != nil {
			r.progress.SetError(err.Error())
		}
		r.logger.Error("index_build_failed",
			slog.String("path", r.cfg.Dir),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil, err
	}
	result.Duration = time.Since(start)

	if r.progress != nil {
		r.progress.SetReady(result.Outcome())
	}

	stats := result.Index.Stats()
	r.logger.Info("index_build_completed",
		slog.String("path", r.cfg.Dir),
		slog.Int("files", result.Source.Files),
		slog.Int("rows", result.Source.Rows),
		slog.Int("rows_skipped", result.Source.Skipped),
		slog.Int("words", result.Build.Indexed),
		slog.Int("duplicates", result.Build.Duplicates),
		slog.Int("keys", stats.Keys),
		slog.String("heap_in_use", profiling.FormatBytes(profiling.HeapInUse())),
		slog.String("duration_total", result.Duration.String()),
		slog.Int64("duration_total_ms", result.Duration.Milliseconds()))

	return result, nil
}

func (r *Runner) run(ctx context.Context) (*RunnerResult, error) {
	src, err := wordsource.New(wordsource.Options{
		Dir:       r.cfg.Dir,
		Suffix:    r.cfg.Suffix,
		Delimiter: r.cfg.Delimiter,
		Workers:   r.cfg.Workers,
		Logger:    r.logger,
	})
	if err != nil {
		return nil, err
	}

	idx, build, err := anagram.Build(ctx, src)
	if err != nil {
		return nil, err
	}

	return &RunnerResult{
		Folder: r.cfg.Dir,
		Index:  idx,
		Build:  build,
		Source: src.Stats(),
	}, nil
}
