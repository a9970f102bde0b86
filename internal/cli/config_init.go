package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
$XDG_CONFIG_HOME/charscope/config.yaml, or under $CHARSCOPE_HOME when set.`,
		Example: `  # Create the configuration file
  charscope config init

  # Create configuration, overwriting existing
  charscope config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configFileFlag(cmd)
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// configFileFlag returns --config, or the default config file path.
func configFileFlag(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.FilePath()
}
