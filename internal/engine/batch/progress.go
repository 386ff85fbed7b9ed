package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Tracker tracks run progress for UI updates. It is thread-safe so a
// concurrent run can advance it from several workers.
type Tracker struct {
	total     int
	processed int
	startTime time.Time
	updatedAt time.Time

	mu sync.RWMutex
}

// NewTracker creates a tracker for a run of total items.
func NewTracker(total int) *Tracker {
	now := time.Now()
	return &Tracker{
		total:     total,
		startTime: now,
		updatedAt: now,
	}
}

// Add records n more completed items.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed += n
	t.updatedAt = time.Now()
}

// Processed returns the number of completed items.
func (t *Tracker) Processed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.processed
}

// Total returns the number of items in the run.
func (t *Tracker) Total() int {
	return t.total
}

// PercentComplete returns the completion percentage (0-100).
func (t *Tracker) PercentComplete() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.total == 0 {
		return 0
	}
	return float64(t.processed) / float64(t.total) * percentMultiplier
}

// IsComplete reports whether every item has been processed.
func (t *Tracker) IsComplete() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.processed >= t.total
}

// Elapsed returns the time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return time.Since(t.startTime)
}

// ItemsPerSecond returns the processing rate so far.
func (t *Tracker) ItemsPerSecond() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	elapsed := time.Since(t.startTime).Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(t.processed) / elapsed
}

// EstimatedRemaining estimates the remaining run time from the average
// time per item. Returns 0 before the first item completes.
func (t *Tracker) EstimatedRemaining() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.processed == 0 {
		return 0
	}
	avg := time.Since(t.startTime) / time.Duration(t.processed)
	return avg * time.Duration(t.total-t.processed)
}
