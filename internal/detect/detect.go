// Package detect implements automatic language detection: each candidate
// engine configuration recognizes the same work item, and candidates are
// ranked by average recognition confidence.
package detect

import (
	"context"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// Line is a single recognized text line with its confidence score in
// [0, 1].
type Line struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// RecognizeFunc runs recognition for one work item on an engine handle and
// returns the recognized lines. The detector never inspects the function;
// failures only need to surface as errors.
type RecognizeFunc func(ctx context.Context, handle *engine.Handle, item string) ([]Line, error)

// CandidateResult records how one candidate configuration performed. It is
// never mutated after creation.
type CandidateResult struct {
	Key engine.Key

	// AverageConfidence is the mean confidence over recognized lines, or
	// 0.0 when nothing was recognized or recognition failed.
	AverageConfidence float64

	// LineCount is the number of recognized lines.
	LineCount int

	Lines []Line
}

// Detection is the outcome of a Detect call.
type Detection struct {
	// Best is the highest-confidence candidate, or nil when every
	// candidate failed or recognized nothing.
	Best *CandidateResult

	// All holds one result per candidate, in input order, including
	// failures as zero-confidence entries.
	All []CandidateResult
}

// Detector ranks candidate configurations for a work item. Engine handles
// come from the shared cache, so repeated detections reuse engines.
type Detector struct {
	cache   *engine.Cache
	factory engine.Factory
}

// NewDetector creates a detector drawing handles from cache via factory.
func NewDetector(cache *engine.Cache, factory engine.Factory) *Detector {
	return &Detector{cache: cache, factory: factory}
}

// Detect evaluates the candidates in order. The running best is updated
// only on a strictly greater average confidence, so the earliest candidate
// wins ties; input order is load-bearing. Per-candidate failures (engine
// construction included) are recorded as zero-confidence results and never
// escape; the only error return is context cancellation.
func (d *Detector) Detect(ctx context.Context, item string, candidates []engine.Key, recognize RecognizeFunc) (Detection, error) {
	logger := logging.FromContext(ctx)
	detection := Detection{All: make([]CandidateResult, 0, len(candidates))}
	bestConfidence := 0.0

	for _, key := range candidates {
		if err := ctx.Err(); err != nil {
			return Detection{}, err
		}

		result := d.evaluate(ctx, item, key, recognize)
		detection.All = append(detection.All, result)

		logger.Debug().Str("key", key.String()).
			Float64("avg_confidence", result.AverageConfidence).
			Int("lines", result.LineCount).
			Msg("candidate evaluated")

		if result.AverageConfidence > bestConfidence {
			bestConfidence = result.AverageConfidence
			best := result
			detection.Best = &best
		}
	}

	return detection, nil
}

// evaluate runs one candidate and folds any failure into a zero-confidence
// result.
func (d *Detector) evaluate(ctx context.Context, item string, key engine.Key, recognize RecognizeFunc) CandidateResult {
	result := CandidateResult{Key: key}

	handle, err := d.cache.GetOrCreate(ctx, key, d.factory)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Err(err).
			Str("key", key.String()).Msg("candidate engine unavailable")
		return result
	}

	lines, err := recognize(ctx, handle, item)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().Err(err).
			Str("key", key.String()).Msg("candidate recognition failed")
		return result
	}

	result.Lines = lines
	result.LineCount = len(lines)
	if len(lines) == 0 {
		return result
	}

	var sum float64
	for _, line := range lines {
		sum += line.Confidence
	}
	result.AverageConfidence = sum / float64(len(lines))
	return result
}

// DefaultCandidates is the candidate list used when the caller does not
// supply one.
func DefaultCandidates() []engine.Key {
	return []engine.Key{
		engine.MustKey("ch"),
		engine.MustKey("en"),
		engine.MustKey("japan"),
		engine.MustKey("korean"),
	}
}
