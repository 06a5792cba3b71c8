package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
	"github.com/Aman-CERP/anagrams/internal/logging"
	"github.com/Aman-CERP/anagrams/internal/ui"
)

type logsOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	noColor bool
	file    string
}

func newLogsCmd(a *app) *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the anagrams log file",
		Long: `Show the last lines of the log written by 'anagrams serve' and --debug runs.

The file is ~/.anagrams/logs/anagrams.log unless logging.file or
ANAGRAMS_LOG_FILE points elsewhere.`,
		Example: `  anagrams logs
  anagrams logs -n 100 --level warn
  anagrams logs -f --filter index_`,
		Args: maxPositional(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.file == "" {
				opts.file = a.cfg.Logging.FilePath
			}
			if opts.file == "" {
				opts.file = logging.DefaultLogPath()
			}
			opts.noColor = opts.noColor || ui.DetectNoColor() || !ui.IsTTY(cmd.OutOrStdout())
			return runLogs(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to log file")

	return cmd
}

func runLogs(ctx context.Context, cmd *cobra.Command, opts logsOptions) error {
	var pattern *regexp.Regexp
	if opts.filter != "" {
		p, err := regexp.Compile(opts.filter)
		if err != nil {
			return apperrors.UsageError(fmt.Sprintf("invalid filter pattern: %v", err))
		}
		pattern = p
	}

	if _, err := os.Stat(opts.file); err != nil {
		return apperrors.New(apperrors.ErrCodeSourceNotFound, "log file not found", err).
			WithDetail("path", opts.file).
			WithSuggestion("Run 'anagrams serve' or pass --debug to create it")
	}

	out := cmd.OutOrStdout()
	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   opts.level,
		Pattern: pattern,
		NoColor: opts.noColor,
	}, out)

	fmt.Fprintf(cmd.ErrOrStderr(), "Log file: %s\n---\n", opts.file)

	entries, err := viewer.Tail(opts.file, opts.lines)
	if err != nil {
		return err
	}
	viewer.Print(entries)

	if !opts.follow {
		return nil
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ch := make(chan logging.LogEntry, 100)
	errCh := make(chan error, 1)
	go func() { errCh <- viewer.Follow(ctx, opts.file, ch) }()

	for {
		select {
		case e := <-ch:
			fmt.Fprintln(out, viewer.FormatEntry(e))
		case err := <-errCh:
			return err
		}
	}
}
