package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/pagination"
)

// filterFlags holds the query flags shared by browse and list.
type filterFlags struct {
	name    string
	status  string
	gender  string
	species string
	page    int
	sort    string
}

// register adds the query flags to cmd.
func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "case-insensitive name search")
	cmd.Flags().StringVar(&f.status, "status", "", "status filter (Alive, Dead, unknown)")
	cmd.Flags().StringVar(&f.gender, "gender", "", "gender filter (Female, Male, Genderless, unknown)")
	cmd.Flags().StringVar(&f.species, "species", "", "species filter, e.g. Human")
	cmd.Flags().IntVarP(&f.page, "page", "p", pagination.MinPage, "1-based results page")
	cmd.Flags().StringVar(&f.sort, "sort", "none", "client-side name sort within the page: none, asc, desc")
}

// state validates the flags and returns the initial filter state and sort.
func (f filterFlags) state() (catalog.FilterState, catalog.SortDirection, error) {
	if err := pagination.ValidatePage(f.page); err != nil {
		return catalog.FilterState{}, catalog.SortNone, fmt.Errorf("invalid --page: %w", err)
	}
	dir, err := catalog.ParseSortDirection(f.sort)
	if err != nil {
		return catalog.FilterState{}, catalog.SortNone, fmt.Errorf("invalid --sort: %w", err)
	}

	return catalog.FilterState{
		Page:    f.page,
		Name:    f.name,
		Status:  f.status,
		Gender:  f.gender,
		Species: f.species,
	}, dir, nil
}
