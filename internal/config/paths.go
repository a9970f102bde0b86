package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName        = "charscope"
	configFileName = "config.yaml"
	logFileName    = "charscope.log"

	// EnvHome overrides the XDG locations with a single directory.
	EnvHome = "CHARSCOPE_HOME"
)

// Dir returns the directory holding config.yaml.
func Dir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// FilePath returns the default config file location.
func FilePath() string {
	return filepath.Join(Dir(), configFileName)
}

// LogDir returns the directory log files are written to.
func LogDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return filepath.Join(home, "logs")
	}
	return filepath.Join(xdg.StateHome, appName)
}

// DefaultLogFile returns the default log file location.
func DefaultLogFile() string {
	return filepath.Join(LogDir(), logFileName)
}
