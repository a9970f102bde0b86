package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/charscope/internal/config"
	"github.com/rshade/charscope/internal/logging"
	"github.com/rshade/charscope/internal/tui"
)

// Environment overrides for logging, applied after the config file.
const (
	EnvLogLevel  = "CHARSCOPE_LOG_LEVEL"
	EnvLogFormat = "CHARSCOPE_LOG_FORMAT"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	loggingCfg = adjustLogging(loggingCfg, debug, runsInteractiveTUI(cmd))

	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(EnvLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	} else if result.UsingFile && debugOrInteractive(cmd, debug) {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// adjustLogging applies --debug. The browser owns the terminal, so while it
// runs logs always go to a file, debug or not.
func adjustLogging(cfg config.LoggingConfig, debug, interactive bool) config.LoggingConfig {
	if debug {
		cfg.Level = "debug"
		if !interactive {
			cfg.Format = "console"
			cfg.File = ""
		}
	}
	if interactive && cfg.File == "" {
		cfg.File = config.DefaultLogFile()
	}
	return cfg
}

// runsInteractiveTUI reports whether cmd is about to take over the terminal.
func runsInteractiveTUI(cmd *cobra.Command) bool {
	if cmd.HasParent() && cmd.Name() != "browse" {
		return false
	}
	plain, _ := cmd.Flags().GetBool("plain")
	return tui.DetectOutputMode(plain, false, false) == tui.OutputModeInteractive
}

// debugOrInteractive reports whether the log location is worth printing:
// piped output stays clean.
func debugOrInteractive(cmd *cobra.Command, debug bool) bool {
	if debug {
		return true
	}
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && isTerminal(f)
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	return logResult.Close()
}
