package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/StephenKaylonChan/ocrkit/internal/detect"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/output"
	"github.com/StephenKaylonChan/ocrkit/internal/tesseract"
)

func newDetectCmd() *cobra.Command {
	var (
		candidates []string
		jsonPath   string
	)

	cmd := &cobra.Command{
		Use:   "detect IMAGE",
		Short: "Detect the best recognition language for an image",
		Long: `Recognize IMAGE once per candidate language and rank the candidates
by average line confidence. Candidates that fail to initialize or
recognize score zero instead of aborting the detection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			keys, err := candidateKeys(candidates)
			if err != nil {
				return err
			}

			cache := engine.NewCache()
			defer func() {
				if err := cache.CleanupAll(); err != nil {
					logger.Warn().Err(err).Msg("engine cleanup reported errors")
				}
			}()

			detector := detect.NewDetector(cache, tesseract.Factory())
			detection, err := detector.Detect(ctx, args[0], keys, tesseract.Recognize)
			if err != nil {
				return err
			}

			if jsonPath != "" {
				if err := output.WriteJSON(jsonPath, detection); err != nil {
					return err
				}
			}

			cmd.Println(renderDetection(args[0], detection))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&candidates, "candidates", nil,
		"comma-separated language candidates (default ch,en,japan,korean)")
	cmd.Flags().StringVar(&jsonPath, "json", "", "also write the full detection result to this file")

	return cmd
}

// candidateKeys normalizes the candidate language list, falling back to the
// default set when empty.
func candidateKeys(candidates []string) ([]engine.Key, error) {
	if len(candidates) == 0 {
		return detect.DefaultCandidates(), nil
	}
	keys := make([]engine.Key, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		key, err := engine.NormalizeKey(candidate)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no usable candidates in %q", strings.Join(candidates, ","))
	}
	return keys, nil
}
