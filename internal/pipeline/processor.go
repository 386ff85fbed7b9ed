// Package pipeline wires the engine cache, batch runner and a recognizer
// into an image processor: the shape a batch OCR session takes from the
// caller's point of view.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/StephenKaylonChan/ocrkit/internal/detect"
	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/engine/batch"
)

// Result is the payload produced for each successfully processed image.
type Result struct {
	Path              string
	Lines             []detect.Line
	AverageConfidence float64
}

// FullText joins the recognized lines with newlines.
func (r *Result) FullText() string {
	texts := make([]string, 0, len(r.Lines))
	for _, line := range r.Lines {
		texts = append(texts, line.Text)
	}
	return strings.Join(texts, "\n")
}

// Processor processes images with a single engine configuration, drawing
// the handle from a shared cache so the engine is constructed once for the
// whole batch.
type Processor struct {
	cache     *engine.Cache
	key       engine.Key
	factory   engine.Factory
	recognize detect.RecognizeFunc
}

// New creates a processor for the given configuration.
func New(cache *engine.Cache, key engine.Key, factory engine.Factory, recognize detect.RecognizeFunc) *Processor {
	return &Processor{cache: cache, key: key, factory: factory, recognize: recognize}
}

// Process handles one image path; it satisfies batch.ProcessFunc[string].
// Engine construction and configuration failures pass through untouched so
// the runner treats them as fatal; missing files keep their not-found
// identity; everything else is wrapped as a per-item processing error.
func (p *Processor) Process(ctx context.Context, path string) (any, error) {
	handle, err := p.cache.GetOrCreate(ctx, p.key, p.factory)
	if err != nil {
		return nil, err
	}

	lines, err := p.recognize(ctx, handle, path)
	if err != nil {
		var notFound *engine.NotFoundError
		if engine.IsFatal(err) || errors.As(err, &notFound) {
			return nil, err
		}
		return nil, &engine.ProcessError{Item: path, Msg: "recognition failed", Err: err}
	}

	result := &Result{Path: path, Lines: lines}
	if len(lines) > 0 {
		var sum float64
		for _, line := range lines {
			sum += line.Confidence
		}
		result.AverageConfidence = sum / float64(len(lines))
	}
	return result, nil
}

// Run processes paths through a batch runner configured with opts.
func (p *Processor) Run(ctx context.Context, paths []string, opts ...batch.Option[string]) (*batch.Summary[string], error) {
	runner := batch.NewRunner(opts...)
	return runner.Run(ctx, paths, p.Process)
}
