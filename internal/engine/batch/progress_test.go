package batch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tracker := NewTracker(4)

	assert.Equal(t, 4, tracker.Total())
	assert.Equal(t, 0, tracker.Processed())
	assert.InDelta(t, 0.0, tracker.PercentComplete(), 0.001)
	assert.False(t, tracker.IsComplete())
	assert.Equal(t, int64(0), int64(tracker.EstimatedRemaining()))

	tracker.Add(1)
	assert.Equal(t, 1, tracker.Processed())
	assert.InDelta(t, 25.0, tracker.PercentComplete(), 0.001)

	tracker.Add(3)
	assert.Equal(t, 4, tracker.Processed())
	assert.InDelta(t, 100.0, tracker.PercentComplete(), 0.001)
	assert.True(t, tracker.IsComplete())
}

func TestTrackerZeroTotal(t *testing.T) {
	tracker := NewTracker(0)
	assert.InDelta(t, 0.0, tracker.PercentComplete(), 0.001)
	assert.True(t, tracker.IsComplete())
}

func TestTrackerRates(t *testing.T) {
	tracker := NewTracker(10)
	tracker.Add(5)

	assert.Greater(t, tracker.ItemsPerSecond(), 0.0)
	assert.GreaterOrEqual(t, int64(tracker.EstimatedRemaining()), int64(0))
	assert.Greater(t, int64(tracker.Elapsed()), int64(0))
}

func TestTrackerConcurrentAdd(t *testing.T) {
	tracker := NewTracker(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				tracker.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, tracker.Processed())
	assert.True(t, tracker.IsComplete())
}
