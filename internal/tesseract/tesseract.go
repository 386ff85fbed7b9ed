//go:build ocr

// Package tesseract binds the engine boundary to Tesseract via gosseract.
// It requires Tesseract to be installed and the "ocr" build tag; without
// the tag, the stub implementation reports a missing dependency instead.
//
// On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-all
package tesseract

import (
	"context"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/otiai10/gosseract/v2"

	"github.com/StephenKaylonChan/ocrkit/internal/detect"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// minEngineVersion is the oldest Tesseract release the binding supports;
// older releases lack the LSTM models the traineddata table assumes.
const minEngineVersion = "4.0.0"

// Available reports whether this build can construct real engines.
func Available() bool { return true }

// Engine wraps a gosseract client as an engine.Engine.
type Engine struct {
	client *gosseract.Client
}

// Close releases the underlying Tesseract resources.
func (e *Engine) Close() error {
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// Factory returns the engine factory for Tesseract-backed handles. The
// engine version is gated once per construction; the configuration key's
// language is translated to a traineddata name and its orientation flag to
// the corresponding page segmentation mode.
func Factory() engine.Factory {
	return func(ctx context.Context, key engine.Key) (engine.Engine, error) {
		if err := checkVersion(ctx); err != nil {
			return nil, err
		}

		lang, err := TrainedData(key)
		if err != nil {
			return nil, err
		}

		client := gosseract.NewClient()
		if err := client.SetLanguage(lang); err != nil {
			_ = client.Close()
			return nil, &engine.InitError{
				Cause: engine.CauseRuntime,
				Msg:   "setting language " + lang,
				Err:   err,
			}
		}

		if key.HasFlag(engine.FlagOrientationClassify) {
			if err := client.SetPageSegMode(gosseract.PSM_AUTO_OSD); err != nil {
				_ = client.Close()
				return nil, &engine.InitError{
					Cause: engine.CauseRuntime,
					Msg:   "enabling orientation detection",
					Err:   err,
				}
			}
		}

		return &Engine{client: client}, nil
	}
}

// checkVersion gates engine construction on the installed Tesseract
// version. An unparseable version string is logged and allowed through; a
// too-old version is a runtime initialization failure.
func checkVersion(ctx context.Context) error {
	raw := gosseract.Version()
	installed, err := semver.NewVersion(raw)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Str("version", raw).
			Msg("could not parse tesseract version, skipping version gate")
		return nil
	}

	minimum := semver.MustParse(minEngineVersion)
	if installed.LessThan(minimum) {
		return &engine.InitError{
			Cause: engine.CauseRuntime,
			Msg:   fmt.Sprintf("tesseract %s is older than supported minimum %s", raw, minEngineVersion),
		}
	}
	return nil
}

// Recognize runs recognition for one image file on a Tesseract handle and
// returns per-line text with confidences in [0, 1]. A missing file is
// reported as *engine.NotFoundError so batch policies can classify it.
func Recognize(ctx context.Context, handle *engine.Handle, item string) ([]detect.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eng, ok := handle.Engine().(*Engine)
	if !ok {
		return nil, fmt.Errorf("handle for %s is not a tesseract engine", handle.Key())
	}

	if _, err := os.Stat(item); err != nil {
		if os.IsNotExist(err) {
			return nil, &engine.NotFoundError{Path: item}
		}
		return nil, fmt.Errorf("stat %s: %w", item, err)
	}

	if err := eng.client.SetImage(item); err != nil {
		return nil, fmt.Errorf("set image %s: %w", item, err)
	}

	boxes, err := eng.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", item, err)
	}

	lines := make([]detect.Line, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		lines = append(lines, detect.Line{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
		})
	}
	return lines, nil
}
