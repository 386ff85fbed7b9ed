// Command ocrkit drives an external OCR engine over batches of images.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/StephenKaylonChan/ocrkit/internal/cli"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/pkg/version"
)

// Exit codes by failure class. Per-item failures under the continue and
// stop policies are reported in the summary and never change the exit
// code; only errors that escape the run do.
const (
	exitOK         = 0
	exitGeneral    = 1
	exitInit       = 2
	exitConfig     = 3
	exitNotFound   = 4
	exitProcessing = 5
	exitOutput     = 6
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps a failure to its exit code by error class.
func exitCode(err error) int {
	var (
		initErr     *engine.InitError
		configErr   *engine.ConfigError
		notFoundErr *engine.NotFoundError
		processErr  *engine.ProcessError
		outputErr   *engine.OutputError
	)

	switch {
	case errors.As(err, &initErr):
		return exitInit
	case errors.As(err, &configErr):
		return exitConfig
	case errors.As(err, &notFoundErr):
		return exitNotFound
	case errors.As(err, &processErr):
		return exitProcessing
	case errors.As(err, &outputErr):
		return exitOutput
	default:
		return exitGeneral
	}
}
