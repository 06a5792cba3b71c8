package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/anagrams/internal/async"
	"github.com/Aman-CERP/anagrams/internal/index"
	"github.com/Aman-CERP/anagrams/internal/logging"
	"github.com/Aman-CERP/anagrams/internal/mcp"
	"github.com/Aman-CERP/anagrams/internal/watcher"
	"github.com/Aman-CERP/anagrams/internal/wordsource"
)

func newServeCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve [dictionary_folder]",
		Short: "Serve anagram lookups over MCP (stdio)",
		Long: `Build the index and serve it to MCP clients over stdin/stdout.

Tools:
  find_anagrams  look up the anagrams of a word
  index_status   report the folder and statistics of the current index

stdout carries JSON-RPC only. Logs go to ~/.anagrams/logs/anagrams.log.

With --watch the folder is monitored and the index is rebuilt and swapped
when dictionary files change. Lookups keep using the previous index until
the rebuild succeeds.`,
		Example: `  # Serve a folder
  anagrams serve ./dictionary

  # Rebuild on changes
  anagrams serve --watch ./dictionary`,
		Args: maxPositional(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			folder, err := a.folder(arg)
			if err != nil {
				return err
			}

			if !a.debug {
				path := a.cfg.Logging.FilePath
				if path == "" {
					path = logging.DefaultLogPath()
				}
				cleanup, err := logging.SetupServeMode(path, a.cfg.Logging.Level)
				if err != nil {
					return err
				}
				defer cleanup()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.runServe(ctx, folder, watch || a.cfg.Serve.Watch, &sdk.StdioTransport{})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Rebuild the index when dictionary files change")

	return cmd
}

// runServe builds the index for folder and serves it over t until ctx ends
// or the client disconnects.
func (a *app) runServe(ctx context.Context, folder string, watch bool, t sdk.Transport) error {
	progress := async.NewIndexProgress(folder)

	result, err := a.build(ctx, folder, index.WithProgress(progress))
	if err != nil {
		return err
	}
	searcher, err := a.searcher(result.Index)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(searcher, progress)
	if err != nil {
		return err
	}

	if watch {
		stopWatch, err := a.watch(ctx, folder, searcher, progress)
		if err != nil {
			return err
		}
		defer stopWatch()
	}

	err = server.ServeTransport(ctx, t)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watch rebuilds the index whenever a dictionary file in folder changes and
// swaps it into searcher. The returned function stops watching.
func (a *app) watch(ctx context.Context, folder string, searcher swappableSearcher, progress *async.IndexProgress) (func(), error) {
	src, err := wordsource.New(wordsource.Options{
		Dir:       folder,
		Suffix:    a.cfg.Dictionary.Suffix,
		Delimiter: a.cfg.DelimiterRune(),
	})
	if err != nil {
		return nil, err
	}

	reloader := async.NewReloader(func(ctx context.Context) error {
		result, err := a.build(ctx, folder, index.WithProgress(progress))
		if err != nil {
			return err
		}
		searcher.Swap(result.Index)
		slog.Info("index_swapped",
			slog.String("path", folder),
			slog.Int("keys", result.Index.Len()))
		return nil
	})
	reloader.Start(ctx)

	w, err := watcher.New(watcher.Options{
		DebounceWindow: a.cfg.DebounceDuration(),
		Match:          src.Matches,
	})
	if err != nil {
		reloader.Stop()
		return nil, err
	}

	go func() {
		if err := w.Start(ctx, folder); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("watcher_failed", slog.String("path", folder), slog.String("error", err.Error()))
		}
	}()
	go func() {
		for batch := range w.Events() {
			slog.Info("dictionary_changed",
				slog.String("path", folder),
				slog.Int("files", len(batch)),
				slog.String("first", batch[0].Name),
				slog.String("op", batch[0].Operation.String()),
				slog.Int64("batches_dropped", w.Dropped()))
			reloader.Trigger()
		}
	}()
	go func() {
		for err := range w.Errors() {
			slog.Warn("watcher_error", slog.String("error", err.Error()))
		}
	}()

	return func() {
		_ = w.Stop()
		reloader.Stop()
	}, nil
}
