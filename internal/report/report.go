// Package report folds a batch summary into a serializable record. It is a
// pure transformation: persistence belongs to the output package.
package report

import (
	"fmt"
	"time"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/engine/batch"
)

// RateUnavailable is the success-rate sentinel for empty runs.
const RateUnavailable = "N/A"

// OutcomeRecord is the serializable slice of a batch outcome. Opaque
// payloads are deliberately dropped; the report carries only what every
// payload type can provide.
type OutcomeRecord struct {
	Item      string                  `json:"item"`
	Success   bool                    `json:"success"`
	ElapsedMS int64                   `json:"elapsed_ms"`
	Error     *engine.ErrorDescriptor `json:"error,omitempty"`
}

// Report is the serializable form of a batch summary.
type Report struct {
	RunID          string          `json:"run_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Total          int             `json:"total"`
	SuccessCount   int             `json:"success_count"`
	FailureCount   int             `json:"failure_count"`
	SuccessRate    string          `json:"success_rate"`
	TotalElapsedMS int64           `json:"total_elapsed_ms"`
	Outcomes       []OutcomeRecord `json:"outcomes"`
	Extra          map[string]any  `json:"extra,omitempty"`
}

// Render produces the report for a summary, merging the optional extra
// block verbatim. It performs no I/O.
func Render[T any](summary *batch.Summary[T], extra map[string]any) Report {
	outcomes := make([]OutcomeRecord, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		outcomes = append(outcomes, OutcomeRecord{
			Item:      fmt.Sprint(outcome.Item),
			Success:   outcome.Success,
			ElapsedMS: outcome.Elapsed.Milliseconds(),
			Error:     outcome.Error,
		})
	}

	return Report{
		RunID:          summary.RunID,
		Timestamp:      summary.Timestamp,
		Total:          summary.Total,
		SuccessCount:   summary.SuccessCount,
		FailureCount:   summary.FailureCount,
		SuccessRate:    successRate(summary.SuccessCount, summary.Total),
		TotalElapsedMS: summary.TotalElapsed.Milliseconds(),
		Outcomes:       outcomes,
		Extra:          extra,
	}
}

// successRate formats the rate as a percentage, or RateUnavailable for an
// empty run.
func successRate(success, total int) string {
	if total == 0 {
		return RateUnavailable
	}
	return fmt.Sprintf("%.1f%%", float64(success)/float64(total)*100)
}
