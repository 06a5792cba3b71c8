package wordsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
)

// DefaultSuffix is the file extension selected when none is configured.
const DefaultSuffix = "csv"

// Options configures a Directory.
type Options struct {
	// Dir is the folder to read. Subfolders are not visited.
	Dir string

	// Suffix is the file extension to select, without the dot.
	// Matching is case-sensitive. Default: csv.
	Suffix string

	// Delimiter separates fields within a row. Default: ','.
	Delimiter rune

	// Workers bounds the number of files read at once.
	// Default: runtime.NumCPU().
	Workers int

	// Logger receives per-file and skipped-row events. Default: slog.Default().
	Logger *slog.Logger
}

// Stats summarizes the most recent walk.
type Stats struct {
	Files   int `json:"files"`
	Rows    int `json:"rows"`
	Words   int `json:"words"`
	Blank   int `json:"blank"`
	Skipped int `json:"skipped"`
}

// Directory is an anagram.WordSource over a folder of delimited files.
type Directory struct {
	dir       string
	suffix    string
	delimiter rune
	workers   int
	logger    *slog.Logger

	mu       sync.Mutex
	stats    Stats
	warnings []*apperrors.AppError
}

// New validates opts and returns a Directory. The folder must exist when New
// is called; its files are listed again on every walk.
func New(opts Options) (*Directory, error) {
	if opts.Dir == "" {
		return nil, apperrors.UsageError("dictionary folder is required").
			WithSuggestion("Pass a folder argument, use --dir, or set ANAGRAMS_DICTIONARY_DIR")
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeSourceNotFound,
				fmt.Sprintf("dictionary folder %s does not exist", opts.Dir), err).
				WithDetail("path", opts.Dir)
		}
		return nil, apperrors.SourceIOError(opts.Dir, err)
	}
	if !info.IsDir() {
		return nil, apperrors.New(apperrors.ErrCodeNotADirectory,
			fmt.Sprintf("%s is not a directory", opts.Dir), nil).
			WithDetail("path", opts.Dir)
	}

	suffix := strings.TrimPrefix(opts.Suffix, ".")
	if suffix == "" {
		suffix = DefaultSuffix
	}
	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}
	if !validDelimiter(delimiter) {
		return nil, apperrors.ConfigError(fmt.Sprintf("invalid field delimiter %q", delimiter), nil)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Directory{
		dir:       opts.Dir,
		suffix:    suffix,
		delimiter: delimiter,
		workers:   workers,
		logger:    logger,
	}, nil
}

// Dir returns the folder being read.
func (d *Directory) Dir() string {
	return d.dir
}

// Files lists the matching files in sorted order.
func (d *Directory) Files() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, apperrors.SourceIOError(d.dir, err)
	}

	var files []string
	for _, e := range entries {
		if !d.Matches(e.Name()) {
			continue
		}
		path := filepath.Join(d.dir, e.Name())
		if !e.Type().IsRegular() {
			// follow symlinks, skip directories and devices
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// Matches reports whether a file name carries the configured suffix.
func (d *Directory) Matches(name string) bool {
	ext := filepath.Ext(name)
	return ext == "."+d.suffix && len(ext) < len(name)
}

// Stats returns counters from the most recent walk.
func (d *Directory) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Warnings returns the rows skipped during the most recent walk.
func (d *Directory) Warnings() []*apperrors.AppError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.warnings)
}

// Words implements anagram.WordSource. Files are decoded by up to Workers
// goroutines; words reach yield on the calling goroutine, file by file in
// sorted order and row by row within a file.
func (d *Directory) Words(ctx context.Context, yield func(raw string) error) error {
	files, err := d.Files()
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.stats = Stats{Files: len(files)}
	d.warnings = nil
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	results := make([]fileResult, len(files))
	done := make([]chan struct{}, len(files))
	for i := range done {
		done[i] = make(chan struct{})
	}

	launched := make(chan struct{})
	go func() {
		defer close(launched)
		for i, path := range files {
			g.Go(func() error {
				defer close(done[i])
				results[i] = readFile(gctx, path, d.delimiter)
				return results[i].err
			})
		}
	}()

	var yieldErr, readErr error
emit:
	for i := range files {
		select {
		case <-done[i]:
		case <-ctx.Done():
			readErr = ctx.Err()
			break emit
		}

		r := results[i]
		if r.err != nil {
			readErr = r.err
			break
		}
		d.record(files[i], r)

		for _, w := range r.words {
			if err := yield(w); err != nil {
				yieldErr = err
				break emit
			}
		}
		results[i] = fileResult{}
	}

	cancel()
	<-launched
	waitErr := g.Wait()

	if yieldErr != nil {
		return yieldErr
	}
	if readErr != nil {
		// the group holds the first failure; later readers only saw cancellation
		if waitErr != nil {
			return waitErr
		}
		return readErr
	}
	return nil
}

func (d *Directory) record(path string, r fileResult) {
	d.mu.Lock()
	d.stats.Rows += r.rows
	d.stats.Words += len(r.words)
	d.stats.Blank += r.blank
	d.stats.Skipped += len(r.warnings)
	d.warnings = append(d.warnings, r.warnings...)
	d.mu.Unlock()

	for _, w := range r.warnings {
		d.logger.Warn("row_skipped", apperrors.LogAttrs(w)...)
	}
	d.logger.Debug("source_file_read",
		slog.String("path", path),
		slog.Int("rows", r.rows),
		slog.Int("words", len(r.words)),
		slog.Int("skipped", len(r.warnings)))
}

func validDelimiter(r rune) bool {
	switch r {
	case '"', '\r', '\n', 0xFFFD:
		return false
	}
	return r > 0
}
