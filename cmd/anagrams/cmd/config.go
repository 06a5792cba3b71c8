package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/anagrams/internal/config"
	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
	"github.com/Aman-CERP/anagrams/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
		Long: `Show the effective configuration or write a starter config file.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/anagrams/config.yaml)
  3. Project config (.anagrams.yaml)
  4. .env file and environment variables (ANAGRAMS_*)
  5. Command line flags`,
		Example: `  # Show merged configuration
  anagrams config show

  # Write .anagrams.yaml in the current directory
  anagrams config init --dir ./dictionary`,
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  maxPositional(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(a.cfg)
			}
			text, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force bool
		user  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with defaults",
		Long: `Write a configuration file holding the defaults plus any --dir, --suffix
and --delimiter flags given. By default the file is .anagrams.yaml in the
current directory; --user writes the user config instead.`,
		Args: maxPositional(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if !user {
				cwd, err := os.Getwd()
				if err != nil {
					return apperrors.ConfigError("cannot determine working directory", err)
				}
				path = filepath.Join(cwd, config.ProjectConfigName)
			}
			return a.initConfig(output.New(cmd.OutOrStdout()), path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  maxPositional(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func (a *app) initConfig(out *output.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		out.Warningf("%s already exists", path)
		out.Line("Use --force to overwrite it")
		return nil
	}

	cfg := config.NewConfig()
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("failed to create config directory %s", filepath.Dir(path)), err)
	}
	if err := cfg.WriteYAML(path); err != nil {
		return apperrors.ConfigError("failed to write configuration", err).WithDetail("path", path)
	}

	out.Linef("Wrote %s", path)
	return nil
}
