package batch

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
)

// Outcome is the per-item result record of a run. Exactly one of Payload
// and Error is meaningful, selected by Success.
type Outcome[T any] struct {
	// Item is the work item as submitted, never inspected by the runner.
	Item T

	// Success reports whether the processing function returned a payload.
	Success bool

	// Payload is the opaque value produced on success.
	Payload any

	// Error describes the failure on unsuccessful items.
	Error *engine.ErrorDescriptor

	// Elapsed is the wall-clock time spent in the processing function for
	// this item.
	Elapsed time.Duration
}

// Summary aggregates the outcomes of one run.
//
// Invariant: SuccessCount + FailureCount == len(Outcomes) <= Total. Under
// the continue policy len(Outcomes) == Total; under stop it may be smaller.
type Summary[T any] struct {
	// RunID is a ULID assigned when the run starts.
	RunID string

	// Total is the number of items submitted.
	Total int

	SuccessCount int
	FailureCount int

	// Outcomes preserves submission order.
	Outcomes []Outcome[T]

	// TotalElapsed is the wall-clock duration of the whole run.
	TotalElapsed time.Duration

	// Timestamp records when the run finished.
	Timestamp time.Time
}

// newSummary assembles the summary for finished outcomes, computing the
// success and failure counts.
func newSummary[T any](runID string, total int, outcomes []Outcome[T], elapsed time.Duration) *Summary[T] {
	summary := &Summary[T]{
		RunID:        runID,
		Total:        total,
		Outcomes:     outcomes,
		TotalElapsed: elapsed,
		Timestamp:    time.Now(),
	}
	for _, outcome := range outcomes {
		if outcome.Success {
			summary.SuccessCount++
		} else {
			summary.FailureCount++
		}
	}
	return summary
}

// newRunID generates a ULID for the run.
func newRunID() string {
	return ulid.Make().String()
}
