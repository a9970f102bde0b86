package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/config"
	"github.com/rshade/charscope/internal/tui"
)

// NewBrowseCmd creates the browse command, the interactive character browser.
func NewBrowseCmd() *cobra.Command {
	var (
		flags filterFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse characters",
		Long: `Open the interactive character browser.

Type / to search by name, f to pick a status, gender or species filter, s to
cycle the name sort, and the arrow keys to change page. Flags set the initial
query. When stdout is not a terminal the first page is printed instead.`,
		Example: `  # Browse everything
  charscope browse

  # Start on page 2 of living humans
  charscope browse --status Alive --species Human --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, flags, plain)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print the first page instead of opening the browser")

	return cmd
}

// runBrowse opens the browser, or prints the first page when the terminal
// cannot host it.
func runBrowse(cmd *cobra.Command, flags filterFlags, plain bool) error {
	initial, dir, err := flags.state()
	if err != nil {
		return err
	}

	if tui.DetectOutputMode(plain, false, false) != tui.OutputModeInteractive {
		return renderList(cmd, initial, dir, "", plain)
	}

	ctx := cmd.Context()
	client := newClient()
	model := tui.NewBrowseModel(ctx, tui.BrowseOptions{
		Fetcher:            client,
		Species:            client,
		SpeciesConcurrency: config.GetGlobalConfig().Species.Concurrency,
		Initial:            initial,
		Sort:               dir,
	})

	logger.Debug().Ctx(ctx).
		Str("component", "cli").
		Str("operation", "browse").
		Msg("starting interactive browser")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
