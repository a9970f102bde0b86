package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration file together with CHARSCOPE_* environment overrides
and checks that the endpoint URL, timeout and species concurrency are usable.`,
		Example: `  # Validate current configuration
  charscope config validate

  # Validate and show the effective values
  charscope config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate reloads the file directly: the pre-run hook falls back to
// defaults for config commands, which would hide the error.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := config.Load(configFileFlag(cmd))
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")
	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints the effective configuration values.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s\n", cfg.API.Timeout)
	cmd.Printf("  Species concurrency: %d\n", cfg.Species.Concurrency)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}
