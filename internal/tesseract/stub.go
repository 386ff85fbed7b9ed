//go:build !ocr

// Package tesseract binds the engine boundary to Tesseract via gosseract.
//
// This is the stub used when the "ocr" build tag is not set: engine
// construction fails with a missing-dependency initialization error. To
// enable recognition, install Tesseract and rebuild with:
//
//	go build -tags ocr
package tesseract

import (
	"context"

	"github.com/StephenKaylonChan/ocrkit/internal/detect"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

// Available reports whether this build can construct real engines.
func Available() bool { return false }

// Factory returns a factory whose construction always fails with a
// missing-dependency initialization error.
func Factory() engine.Factory {
	return func(_ context.Context, key engine.Key) (engine.Engine, error) {
		return nil, &engine.InitError{
			Cause: engine.CauseMissingDependency,
			Msg:   "tesseract support not compiled in for " + key.String() + "; rebuild with -tags ocr",
		}
	}
}

// Recognize always fails in stub builds; no handle can exist to call it
// with.
func Recognize(_ context.Context, handle *engine.Handle, _ string) ([]detect.Line, error) {
	return nil, &engine.InitError{
		Cause: engine.CauseMissingDependency,
		Msg:   "tesseract support not compiled in for " + handle.Key().String() + "; rebuild with -tags ocr",
	}
}
