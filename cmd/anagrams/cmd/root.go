// Package cmd provides the CLI commands for anagrams.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/anagrams/internal/config"
	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
	"github.com/Aman-CERP/anagrams/internal/index"
	"github.com/Aman-CERP/anagrams/internal/logging"
	"github.com/Aman-CERP/anagrams/internal/output"
	"github.com/Aman-CERP/anagrams/internal/profiling"
	"github.com/Aman-CERP/anagrams/internal/repl"
	"github.com/Aman-CERP/anagrams/internal/ui"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
	"github.com/Aman-CERP/anagrams/pkg/version"
)

// app holds state shared by every command of one invocation.
type app struct {
	dir       string
	suffix    string
	delimiter string
	debug     bool
	plain     bool
	profile   profiling.Options

	cfg            *config.Config
	profiler       *profiling.Session
	loggingCleanup func()
}

// swappableSearcher is a searcher whose index can be replaced in place.
type swappableSearcher interface {
	anagram.Searcher
	Swap(idx *anagram.Index) *anagram.Index
}

// NewRootCmd creates the root command for the anagrams CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "anagrams [dictionary_folder] [word]",
		Short: "Find every dictionary word made of the same letters",
		Long: `anagrams builds an in-memory index from a folder of delimited word files
and answers anagram lookups against it.

With a folder and a word it prints the anagrams and exits. With only a
folder, or with the folder configured through --dir, ANAGRAMS_DICTIONARY_DIR
or a config file, it opens an interactive menu.

Put -- before a word that starts with a dash so it is not read as a flag.`,
		Example: `  # One-shot lookup
  anagrams ./dictionary listen

  # Word that starts with a dash
  anagrams ./dictionary -- -ing

  # Interactive menu
  anagrams ./dictionary

  # Folder from the environment
  ANAGRAMS_DICTIONARY_DIR=./dictionary anagrams`,
		Version:       version.Version,
		Args:          maxPositional(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 2:
				return a.runOneShot(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
			case 1:
				return a.runInteractive(cmd.Context(), cmd, args[0])
			default:
				return a.runInteractive(cmd.Context(), cmd, "")
			}
		},
	}

	cmd.SetVersionTemplate(version.Name + " version {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.dir, "dir", "", "Dictionary folder (overrides "+config.EnvDictionaryDir+")")
	pf.StringVar(&a.suffix, "suffix", "", "Extension of dictionary files, without the dot (default csv)")
	pf.StringVar(&a.delimiter, "delimiter", "", "Field delimiter of dictionary files (default ,)")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging to ~/.anagrams/logs/")
	pf.StringVar(&a.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	pf.StringVar(&a.profile.Mem, "profile-mem", "", "Write memory profile to file")
	pf.StringVar(&a.profile.Trace, "profile-trace", "", "Write execution trace to file")
	cmd.Flags().BoolVar(&a.plain, "plain", false, "Use the line-based menu even on a terminal")

	cmd.PersistentPreRunE = a.setup
	cmd.PersistentPostRunE = a.teardown

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newLogsCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		// PersistentPostRunE is skipped when RunE fails.
		_ = cmd.PersistentPostRunE(cmd, nil)
	}
	return err
}

// maxPositional rejects more than n positional arguments with a usage error.
func maxPositional(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return apperrors.UsageError(fmt.Sprintf("expected at most %d arguments, got %d", n, len(args))).
				WithSuggestion("Usage: " + cmd.UseLine())
		}
		return nil
	}
}

// setup loads configuration, applies flag overrides, starts logging and
// profiling.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return apperrors.ConfigError("cannot determine working directory", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	switch {
	case a.debug:
		logCfg := logging.DebugConfig()
		if cfg.Logging.FilePath != "" {
			logCfg.FilePath = cfg.Logging.FilePath
		}
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		logCfg.MaxFiles = cfg.Logging.MaxFiles
		// serve owns stderr-free logging
		logCfg.WriteToStderr = cmd.Name() != "serve"
		logger, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		a.loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("debug_logging_enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("version", version.Short()))
	case cmd.Name() != "serve":
		slog.SetDefault(logging.NewConsoleLogger(cmd.ErrOrStderr(), cfg.Logging.Level))
	}

	if a.profile.Enabled() {
		s, err := profiling.Start(a.profile)
		if err != nil {
			return err
		}
		a.profiler = s
	}
	return nil
}

// teardown stops profiling and logging. Safe to call twice.
func (a *app) teardown(_ *cobra.Command, _ []string) error {
	err := a.profiler.Stop()
	a.profiler = nil

	if a.loggingCleanup != nil {
		slog.Info("debug_logging_stopped")
		a.loggingCleanup()
		a.loggingCleanup = nil
	}
	return err
}

func (a *app) applyFlags(cfg *config.Config) {
	if a.dir != "" {
		cfg.Dictionary.Dir = a.dir
	}
	if a.suffix != "" {
		cfg.Dictionary.Suffix = a.suffix
	}
	if a.delimiter != "" {
		cfg.Dictionary.Delimiter = a.delimiter
	}
	cfg.Normalize()
}

// folder resolves the dictionary folder: the positional argument first,
// then the configured folder.
func (a *app) folder(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if a.cfg.Dictionary.Dir != "" {
		return a.cfg.Dictionary.Dir, nil
	}
	return "", apperrors.UsageError("no dictionary folder given").
		WithSuggestion("Pass a folder argument, use --dir, or set " + config.EnvDictionaryDir)
}

// build reads folder into a fresh index.
func (a *app) build(ctx context.Context, folder string, opts ...index.RunnerOption) (*index.RunnerResult, error) {
	opts = append([]index.RunnerOption{index.WithLogger(slog.Default().With(slog.String("component", "index")))}, opts...)
	runner := index.NewRunner(index.RunnerConfigFrom(a.cfg, folder), opts...)
	return runner.Run(ctx)
}

// searcher wraps idx with the configured query cache.
func (a *app) searcher(idx *anagram.Index) (swappableSearcher, error) {
	finder := anagram.NewFinder(idx)
	if a.cfg.Query.CacheSize <= 0 {
		return finder, nil
	}
	cached, err := anagram.NewCachedFinder(finder, a.cfg.Query.CacheSize)
	if err != nil {
		return nil, apperrors.InternalError("failed to create query cache", err)
	}
	return cached, nil
}

// buildSearcher prints the startup lines around a build.
func (a *app) buildSearcher(ctx context.Context, out *output.Writer, folder string) (swappableSearcher, error) {
	out.Building(folder)
	result, err := a.build(ctx, folder)
	if err != nil {
		return nil, err
	}
	s, err := a.searcher(result.Index)
	if err != nil {
		return nil, err
	}
	out.Ready()
	return s, nil
}

func (a *app) runOneShot(ctx context.Context, w io.Writer, folder, word string) error {
	out := output.New(w)
	s, err := a.buildSearcher(ctx, out, folder)
	if err != nil {
		return err
	}
	out.Result(s.Find(word))
	return nil
}

func (a *app) runInteractive(ctx context.Context, cmd *cobra.Command, arg string) error {
	folder, err := a.folder(arg)
	if err != nil {
		return err
	}

	uiCfg := ui.NewConfig(cmd.InOrStdin(), cmd.OutOrStdout(),
		ui.WithForcePlain(a.plain),
		ui.WithNoColor(ui.DetectNoColor()),
		ui.WithFolder(folder))

	if ui.UseTUI(uiCfg) {
		return ui.Run(ctx, uiCfg, func(ctx context.Context) (anagram.Searcher, error) {
			result, err := a.build(ctx, folder)
			if err != nil {
				return nil, err
			}
			return a.searcher(result.Index)
		})
	}

	s, err := a.buildSearcher(ctx, output.New(cmd.OutOrStdout()), folder)
	if err != nil {
		return err
	}
	err = repl.New(s, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
