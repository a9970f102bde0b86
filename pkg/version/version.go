// Package version exposes build metadata injected at link time.
package version

// Build metadata, overridden with -ldflags "-X github.com/rshade/charscope/pkg/version.version=...".
//
//nolint:gochecknoglobals // Required for ldflags injection.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}
