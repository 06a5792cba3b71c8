// Package ui provides the terminal menu for interactive lookups.
//
// The menu is a bubbletea program used when both stdin and stdout are
// terminals. Pipes, CI and --plain fall back to the line-based session in
// package repl; UseTUI makes that choice.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Config configures the interactive menu.
type Config struct {
	Input      io.Reader
	Output     io.Writer
	ForcePlain bool
	NoColor    bool
	Folder     string // dictionary folder shown in the header
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithForcePlain forces the line-based session.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) {
		c.ForcePlain = force
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithFolder sets the dictionary folder shown in the header.
func WithFolder(dir string) ConfigOption {
	return func(c *Config) {
		c.Folder = dir
	}
}

// NewConfig creates a new Config with the given streams and options.
func NewConfig(in io.Reader, out io.Writer, opts ...ConfigOption) Config {
	cfg := Config{
		Input:  in,
		Output: out,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// UseTUI reports whether the bubbletea menu should run: both streams must be
// terminals, plain mode must not be forced and CI must not be detected.
func UseTUI(cfg Config) bool {
	if cfg.ForcePlain {
		return false
	}
	if !IsTTY(cfg.Output) || !isTTYReader(cfg.Input) {
		return false
	}
	return !DetectCI()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

func isTTYReader(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
