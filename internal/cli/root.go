// Package cli implements the ocrkit command line: batch OCR runs over a
// directory, automatic language detection, and a listing of supported
// languages.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/StephenKaylonChan/ocrkit/internal/config"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the ocrkit CLI. It wires
// up logging and the run, detect and languages subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logResultHolder

	cmd := &cobra.Command{
		Use:     "ocrkit",
		Short:   "Batch OCR orchestration for Tesseract",
		Long:    "ocrkit: drive an external OCR engine over batches of images with cached engine handles, per-item failure isolation, and automatic language detection",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logResult = setupLogging(cmd, cfg)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $HOME/.ocrkit/config.yaml)")
	cmd.AddCommand(newRunCmd(), newDetectCmd(), newLanguagesCmd())

	return cmd
}

const rootCmdExample = `  # OCR every image in a directory, writing text files and summary.json
  ocrkit run ./scans --output ./out

  # Keep going past failures (default) or stop at the first one
  ocrkit run ./scans --on-error stop

  # Detect the language of a single image
  ocrkit detect invoice.png --candidates ch,en,japan

  # List supported languages and aliases
  ocrkit languages`

// loadConfig resolves the config file path from the --config flag and
// loads it layered over defaults and environment overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
