package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/charscope/internal/catalog"
	"github.com/rshade/charscope/internal/pagination"
)

func TestFilterFlags_State(t *testing.T) {
	tests := []struct {
		name     string
		flags    filterFlags
		want     catalog.FilterState
		wantSort catalog.SortDirection
		wantErr  error
	}{
		{
			name:  "defaults",
			flags: filterFlags{page: 1, sort: "none"},
			want:  catalog.FilterState{Page: 1},
		},
		{
			name:     "all filters",
			flags:    filterFlags{name: "morty", status: "Alive", gender: "Male", species: "Human", page: 3, sort: "DESC"},
			want:     catalog.FilterState{Page: 3, Name: "morty", Status: "Alive", Gender: "Male", Species: "Human"},
			wantSort: catalog.SortDesc,
		},
		{
			name:    "page zero",
			flags:   filterFlags{page: 0},
			wantErr: pagination.ErrInvalidPage,
		},
		{
			name:    "unknown sort",
			flags:   filterFlags{page: 1, sort: "random"},
			wantErr: catalog.ErrInvalidSortDirection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dir, err := tt.flags.state()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSort, dir)
		})
	}
}

func TestFilterFlags_Register(t *testing.T) {
	var f filterFlags
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	f.register(cmd)

	require.NoError(t, cmd.ParseFlags([]string{"-n", "summer", "-p", "4", "--gender", "Female"}))
	assert.Equal(t, "summer", f.name)
	assert.Equal(t, 4, f.page)
	assert.Equal(t, "Female", f.gender)
	assert.Equal(t, "none", f.sort)
}
