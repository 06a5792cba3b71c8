package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
	"github.com/Aman-CERP/anagrams/internal/output"
	"github.com/Aman-CERP/anagrams/internal/wordsource"
	"github.com/Aman-CERP/anagrams/pkg/anagram"
)

// statsReport is the JSON form of `anagrams stats`.
type statsReport struct {
	Folder     string             `json:"folder"`
	Index      anagram.IndexStats `json:"index"`
	Build      anagram.BuildStats `json:"build"`
	Source     wordsource.Stats   `json:"source"`
	DurationMs int64              `json:"duration_ms"`
}

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats [dictionary_folder]",
		Short: "Build the index and print statistics",
		Long: `Build the index and report how many files, rows and words were read,
how many permutation classes the dictionary has and which is the largest.

With --format json a failed build also writes the error as a JSON object
to stdout.`,
		Example: `  anagrams stats ./dictionary
  anagrams stats --format json ./dictionary`,
		Args: maxPositional(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return apperrors.UsageError(fmt.Sprintf("unknown format %q", format)).
					WithSuggestion("Use --format text or --format json")
			}

			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			folder, err := a.folder(arg)
			if err != nil {
				return err
			}

			result, err := a.build(cmd.Context(), folder)
			if err != nil {
				if format == "json" {
					if data, jerr := apperrors.FormatJSON(err); jerr == nil {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					}
				}
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statsReport{
					Folder:     folder,
					Index:      result.Index.Stats(),
					Build:      result.Build,
					Source:     result.Source,
					DurationMs: result.Duration.Milliseconds(),
				})
			}

			output.New(cmd.OutOrStdout()).Stats(folder, result.Index.Stats(), result.Build, result.Source)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}
