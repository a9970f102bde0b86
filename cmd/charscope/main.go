// Command charscope browses the Rick and Morty character catalog.
package main

import (
	"errors"
	"os"

	"github.com/rshade/charscope/internal/api"
	"github.com/rshade/charscope/internal/cli"
	"github.com/rshade/charscope/pkg/version"
)

// Exit codes.
const (
	exitError        = 1
	exitRequestError = 2
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

// exitCode maps a command error to the process exit status. API failures get
// their own code so scripts can tell them from usage errors.
func exitCode(err error) int {
	if errors.Is(err, api.ErrRequestFailed) {
		return exitRequestError
	}
	return exitError
}

func main() {
	if err := run(); err != nil {
		os.Exit(exitCode(err))
	}
}
