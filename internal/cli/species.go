package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/config"
	"github.com/rshade/charscope/internal/engine"
	"github.com/rshade/charscope/internal/logging"
)

// NewSpeciesCmd creates the species command, which lists every species in
// the catalog by walking all character pages.
func NewSpeciesCmd() *cobra.Command {
	var (
		concurrency int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "species",
		Short: "List every species in the catalog",
		Long: `Walk every page of the character catalog and print the distinct species,
sorted by name. Pages after the first are fetched in parallel.`,
		Example: `  charscope species
  charscope species --concurrency 8 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig()

			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.Species.Concurrency
			}
			if err := config.ValidateConcurrency(concurrency); err != nil {
				return fmt.Errorf("invalid --concurrency: %w", err)
			}
			if output == "" {
				output = cfg.Output.DefaultFormat
			}
			format, err := engine.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			species, err := newClient().Species(ctx, concurrency)
			if err != nil {
				return fmt.Errorf("failed to list species: %w", err)
			}
			logging.FromContext(ctx).Debug().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "species").
				Int("count", len(species)).
				Msg("species listed")

			return engine.RenderSpecies(cmd.OutOrStdout(), format, species)
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", config.DefaultSpeciesConcurrency,
		"parallel page fetches (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")

	return cmd
}
