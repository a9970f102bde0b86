package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/charscope/internal/config"
	"github.com/rshade/charscope/internal/logging"
	"github.com/rshade/charscope/pkg/version"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the charscope CLI.
// It loads configuration, wires up logging and tracing, and registers the
// browse, list, species and config subcommands. Run without a subcommand on
// a terminal it opens the browser.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:          "charscope",
		Short:        "Browse the Rick and Morty character catalog",
		Long:         "charscope: search, filter, sort and page through Rick and Morty characters",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return cmd.Help()
			}
			return runBrowse(cmd, filterFlags{page: 1}, false)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("charscope {{.Version}} (commit %s, built %s)\n",
		version.GetGitCommit(), version.GetBuildDate()))
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging (stderr; the log file while the browser runs)")
	cmd.PersistentFlags().String("config", "", "config file (default: $XDG_CONFIG_HOME/charscope/config.yaml)")
	cmd.PersistentFlags().String("base-url", "", "character endpoint URL (overrides config and env)")
	cmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout per request (overrides config and env)")
	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), NewSpeciesCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Open the interactive browser
  charscope

  # Start browsing dead aliens, sorted by name
  charscope browse --status Dead --species Alien --sort asc

  # Print page 2 of the "rick" search as JSON
  charscope list --name rick --page 2 --output json

  # List every species
  charscope species

  # Write a default configuration file
  charscope config init`

// loadConfig reads the config file and env, applies flag overrides, and
// installs the result as the global configuration. Config subcommands fall
// back to defaults on a broken file so it can be inspected or rewritten.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		if !isConfigCmd(cmd) {
			return err
		}
		cmd.PrintErrf("Warning: %v; using defaults\n", err)
		cfg = config.Defaults()
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL, _ = cmd.Flags().GetString("base-url")
	}
	if cmd.Flags().Changed("timeout") {
		var timeout time.Duration
		timeout, _ = cmd.Flags().GetDuration("timeout")
		cfg.API.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config.SetGlobalConfig(cfg)
	return nil
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.HasParent() {
			return true
		}
	}
	return false
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigPathCmd(), NewConfigValidateCmd())
	return cmd
}
