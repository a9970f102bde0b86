package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/api"
	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/config"
	"github.com/rshade/charscope/internal/engine"
	"github.com/rshade/charscope/internal/logging"
	"github.com/rshade/charscope/internal/tui"
	"github.com/rshade/charscope/pkg/version"
)

// NewListCmd creates the list command, which fetches one page and prints it.
func NewListCmd() *cobra.Command {
	var (
		flags  filterFlags
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of characters",
		Long: `Fetch a single page of characters matching the given filters and print it.

Sorting is applied to the fetched page only; it does not reorder the catalog.`,
		Example: `  # First page, as a table
  charscope list

  # Dead characters named "smith", sorted by name
  charscope list --name smith --status Dead --sort asc

  # Page 3 as newline-delimited JSON
  charscope list --page 3 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initial, dir, err := flags.state()
			if err != nil {
				return err
			}
			return renderList(cmd, initial, dir, output, plain)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours and styling")

	return cmd
}

// renderList fetches one page through an orchestrator and writes it to stdout.
func renderList(
	cmd *cobra.Command,
	initial catalog.FilterState,
	dir catalog.SortDirection,
	output string,
	plain bool,
) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if output == "" {
		output = config.GetGlobalConfig().Output.DefaultFormat
	}
	format, err := engine.ParseOutputFormat(output)
	if err != nil {
		return err
	}

	orch := engine.NewOrchestrator(initial, dir)
	req := orch.Start()
	log.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "list").
		Int("page", req.Descriptor.Page).
		Str("format", string(format)).
		Msg("fetching characters")

	if err := orch.Fetch(ctx, newClient(), req); err != nil {
		return fmt.Errorf("failed to fetch characters: %w", err)
	}

	snap := orch.Snapshot()
	if format == engine.OutputTable && tui.DetectOutputMode(plain, false, false) == tui.OutputModeStyled {
		_, err := fmt.Fprint(cmd.OutOrStdout(), tui.RenderStyledPage(snap, tui.TerminalWidth()))
		return err
	}
	return engine.RenderPage(cmd.OutOrStdout(), format, snap)
}

// newClient builds an API client from the global configuration.
func newClient() *api.Client {
	cfg := config.GetGlobalConfig()
	return api.NewClient(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithTimeout(cfg.API.Timeout),
		api.WithUserAgent(cfg.API.UserAgent+"/"+version.GetVersion()),
	)
}
