package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/engine/batch"
)

func sampleSummary() *batch.Summary[string] {
	return &batch.Summary[string]{
		RunID:        "01JABCDEF0123456789ABCDEFG",
		Total:        3,
		SuccessCount: 2,
		FailureCount: 1,
		Outcomes: []batch.Outcome[string]{
			{Item: "a.png", Success: true, Payload: struct{ secret string }{"dropped"}, Elapsed: 120 * time.Millisecond},
			{Item: "b.png", Success: false, Error: &engine.ErrorDescriptor{
				Kind:    engine.KindProcessing,
				Message: "decode error",
				Context: map[string]string{"item": "b.png"},
			}, Elapsed: 30 * time.Millisecond},
			{Item: "c.png", Success: true, Elapsed: 95 * time.Millisecond},
		},
		TotalElapsed: 250 * time.Millisecond,
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	rendered := Render(sampleSummary(), map[string]any{"input_dir": "./scans"})

	assert.Equal(t, "01JABCDEF0123456789ABCDEFG", rendered.RunID)
	assert.Equal(t, 3, rendered.Total)
	assert.Equal(t, 2, rendered.SuccessCount)
	assert.Equal(t, 1, rendered.FailureCount)
	assert.Equal(t, "66.7%", rendered.SuccessRate)
	assert.Equal(t, int64(250), rendered.TotalElapsedMS)
	assert.Equal(t, map[string]any{"input_dir": "./scans"}, rendered.Extra)

	require.Len(t, rendered.Outcomes, 3)
	assert.Equal(t, "a.png", rendered.Outcomes[0].Item)
	assert.Equal(t, int64(120), rendered.Outcomes[0].ElapsedMS)
	assert.Nil(t, rendered.Outcomes[0].Error)

	failed := rendered.Outcomes[1]
	assert.False(t, failed.Success)
	require.NotNil(t, failed.Error)
	assert.Equal(t, engine.KindProcessing, failed.Error.Kind)
	assert.Equal(t, "decode error", failed.Error.Message)
}

func TestRenderEmptySummary(t *testing.T) {
	summary := &batch.Summary[string]{RunID: "01JEMPTY", Timestamp: time.Now()}
	rendered := Render(summary, nil)

	assert.Equal(t, RateUnavailable, rendered.SuccessRate)
	assert.Equal(t, 0, rendered.Total)
	assert.Empty(t, rendered.Outcomes)
	assert.Nil(t, rendered.Extra)
}

func TestReportJSONShape(t *testing.T) {
	rendered := Render(sampleSummary(), nil)

	data, err := json.Marshal(rendered)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Field names are part of the on-disk contract.
	for _, field := range []string{"run_id", "timestamp", "total", "success_count", "failure_count", "success_rate", "total_elapsed_ms", "outcomes"} {
		assert.Contains(t, decoded, field)
	}
	// Successful outcomes serialize without an error block, and extra is
	// omitted when absent.
	assert.NotContains(t, decoded, "extra")

	outcomes, ok := decoded["outcomes"].([]any)
	require.True(t, ok)
	first, ok := outcomes[0].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, first, "error")
}

func TestSuccessRateFormatting(t *testing.T) {
	tests := []struct {
		success, total int
		want           string
	}{
		{0, 0, RateUnavailable},
		{0, 4, "0.0%"},
		{4, 4, "100.0%"},
		{1, 3, "33.3%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, successRate(tt.success, tt.total))
	}
}
