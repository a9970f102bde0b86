package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/charscope/internal/config"
)

func TestAdjustLogging(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	base := config.LoggingConfig{Level: "info", Format: "json", File: "/tmp/charscope.log"}

	tests := []struct {
		name        string
		in          config.LoggingConfig
		debug       bool
		interactive bool
		want        config.LoggingConfig
	}{
		{
			name: "unchanged without debug",
			in:   base,
			want: base,
		},
		{
			name:  "debug on a one-shot command logs to stderr",
			in:    base,
			debug: true,
			want:  config.LoggingConfig{Level: "debug", Format: "console"},
		},
		{
			name:        "debug in the browser keeps the file",
			in:          base,
			debug:       true,
			interactive: true,
			want:        config.LoggingConfig{Level: "debug", Format: "json", File: "/tmp/charscope.log"},
		},
		{
			name:        "browser never logs to stderr",
			in:          config.LoggingConfig{Level: "warn", Format: "console"},
			interactive: true,
			want:        config.LoggingConfig{Level: "warn", Format: "console", File: config.DefaultLogFile()},
		},
		{
			name:        "debug browser without a file gets the default file",
			in:          config.LoggingConfig{Level: "info", Format: "json"},
			debug:       true,
			interactive: true,
			want:        config.LoggingConfig{Level: "debug", Format: "json", File: config.DefaultLogFile()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, adjustLogging(tt.in, tt.debug, tt.interactive))
		})
	}
}

func TestRunsInteractiveTUI_OneShotCommands(t *testing.T) {
	root := &cobra.Command{Use: "charscope"}
	list := &cobra.Command{Use: "list"}
	browse := &cobra.Command{Use: "browse"}
	browse.Flags().Bool("plain", true, "")
	root.AddCommand(list, browse)

	assert.False(t, runsInteractiveTUI(list))
	assert.False(t, runsInteractiveTUI(browse), "--plain never takes over the terminal")
}
