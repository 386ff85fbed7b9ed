package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/engine/batch"
	"github.com/StephenKaylonChan/ocrkit/internal/output"
	"github.com/StephenKaylonChan/ocrkit/internal/pipeline"
	"github.com/StephenKaylonChan/ocrkit/internal/report"
	"github.com/StephenKaylonChan/ocrkit/internal/scan"
	"github.com/StephenKaylonChan/ocrkit/internal/tesseract"
)

// summaryFileName is the aggregate report written into the output directory.
const summaryFileName = "summary.json"

func newRunCmd() *cobra.Command {
	var (
		lang         string
		outputDir    string
		onError      string
		itemTimeout  time.Duration
		probeInputs  bool
		featureFlags []string
	)

	cmd := &cobra.Command{
		Use:   "run INPUT_DIR",
		Short: "OCR every supported image in a directory",
		Long: `Run batch OCR over the images in INPUT_DIR using one cached engine.

Per-item failures are isolated according to --on-error: continue records
them and keeps going, stop halts after the first failure, abort exits
immediately with the failure. With --output, recognized text is written per
image plus an aggregate summary.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := currentConfig()

			if lang == "" {
				lang = cfg.Language
			}
			key, err := engine.NormalizeKey(lang, featureFlags...)
			if err != nil {
				return err
			}

			if onError == "" {
				onError = cfg.OnError
			}
			policy, err := batch.ParsePolicy(onError)
			if err != nil {
				return err
			}

			if itemTimeout == 0 && cfg.ItemTimeout != "" {
				if itemTimeout, err = time.ParseDuration(cfg.ItemTimeout); err != nil {
					return fmt.Errorf("invalid item_timeout in config: %w", err)
				}
			}
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}

			paths, err := scan.FindImages(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				cmd.Printf("No supported images found in %s\n", args[0])
			}

			if probeInputs {
				paths = probeAll(cmd, paths)
			}

			cache := engine.NewCache()
			defer func() {
				if err := cache.CleanupAll(); err != nil {
					logger.Warn().Err(err).Msg("engine cleanup reported errors")
				}
			}()

			processor := pipeline.New(cache, key, tesseract.Factory(), tesseract.Recognize)

			tracker := batch.NewTracker(len(paths))
			opts := []batch.Option[string]{
				batch.WithPolicy[string](policy),
				batch.WithTracker[string](tracker),
				batch.WithItemTimeout[string](itemTimeout),
			}
			if isTerminal(os.Stderr) {
				opts = append(opts, batch.WithProgressFunc[string](func(index, total int, item string) {
					cmd.PrintErrf("[%d/%d] %s\n", index, total, filepath.Base(item))
				}))
			}

			summary, err := processor.Run(ctx, paths, opts...)
			if err != nil {
				return err
			}

			rendered := report.Render(summary, map[string]any{
				"input_dir": args[0],
				"language":  key.String(),
			})

			if outputDir != "" {
				if err := writeOutputs(outputDir, summary, rendered); err != nil {
					return err
				}
				cmd.Printf("Summary written to %s\n", filepath.Join(outputDir, summaryFileName))
			}

			cmd.Println(renderSummary(rendered, tracker))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "engine language code or alias (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for per-image text files and summary.json")
	cmd.Flags().StringVar(&onError, "on-error", "", "per-item failure policy: continue, stop or abort")
	cmd.Flags().DurationVar(&itemTimeout, "timeout", 0, "per-item processing timeout (0 disables)")
	cmd.Flags().BoolVar(&probeInputs, "probe", false, "verify images decode before submitting them")
	cmd.Flags().StringSliceVar(&featureFlags, "feature", nil, "engine feature flags (orientation-classify, unwarp, textline-orientation)")

	return cmd
}

// probeAll drops inputs that fail the decode probe, with a warning per
// dropped file.
func probeAll(cmd *cobra.Command, paths []string) []string {
	kept := paths[:0]
	for _, path := range paths {
		if _, err := scan.Probe(path); err != nil {
			cmd.PrintErrf("Warning: skipping %s: %v\n", filepath.Base(path), err)
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

// writeOutputs persists one text file per successful item plus the
// aggregate summary report.
func writeOutputs(dir string, summary *batch.Summary[string], rendered report.Report) error {
	if err := output.EnsureDir(dir); err != nil {
		return err
	}

	for _, outcome := range summary.Outcomes {
		if !outcome.Success {
			continue
		}
		result, ok := outcome.Payload.(*pipeline.Result)
		if !ok {
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(outcome.Item), filepath.Ext(outcome.Item))
		path := filepath.Join(dir, stem+".txt")
		if err := output.WriteText(path, result.FullText()+"\n"); err != nil {
			return err
		}
	}

	return output.WriteJSON(filepath.Join(dir, summaryFileName), rendered)
}
