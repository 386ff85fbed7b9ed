package cli

import (
	"github.com/spf13/cobra"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// logResultHolder carries the logging handles between the pre-run and the
// post-run.
type logResultHolder struct {
	result logging.Result
}

// cmdConfig is the config loaded during pre-run, read by subcommands.
var cmdConfig *config.Config //nolint:gochecknoglobals // Set once per invocation in PersistentPreRunE

// currentConfig returns the loaded config, or defaults when a command runs
// without the root pre-run (tests).
func currentConfig() *config.Config {
	if cmdConfig == nil {
		return config.Default()
	}
	return cmdConfig
}

// setupLogging configures logging from config file and CLI flags, attaches
// the logger to the command context, and stashes the config for
// subcommands.
func setupLogging(cmd *cobra.Command, cfg *config.Config) *logResultHolder {
	loggingCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result := logging.New(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	}

	ctx := logging.WithContext(cmd.Context(), result.Logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")

	cmdConfig = cfg
	return &logResultHolder{result: result}
}

// cleanupLogging closes the log file handle, if one was opened.
func cleanupLogging(holder *logResultHolder) error {
	if holder == nil {
		return nil
	}
	return holder.result.Close()
}
