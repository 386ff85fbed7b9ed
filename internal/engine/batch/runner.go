package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/StephenKaylonChan/ocrkit/internal/engine"
	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// Policy selects how a run reacts to a per-item failure.
type Policy string

const (
	// PolicyContinue records the failure and proceeds to the next item.
	PolicyContinue Policy = "continue"

	// PolicyStop records the failure and stops; items already processed
	// keep their outcomes, remaining items are never submitted.
	PolicyStop Policy = "stop"

	// PolicyAbort returns the original failure to the caller immediately;
	// no summary is produced.
	PolicyAbort Policy = "abort"
)

// ErrConcurrentPolicy is returned by RunConcurrent for any policy other
// than continue.
var ErrConcurrentPolicy = errors.New("concurrent runs support only the continue policy")

// ParsePolicy validates a policy name, typically from a CLI flag.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyContinue, PolicyStop, PolicyAbort:
		return Policy(s), nil
	case "":
		return PolicyContinue, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (want continue, stop or abort)", s)
	}
}

// ProcessFunc handles a single work item and returns an opaque payload.
// Failures must surface as errors; translating a missing file into a
// per-item error (rather than aborting the batch) is this function's
// responsibility.
type ProcessFunc[T any] func(ctx context.Context, item T) (any, error)

// ProgressFunc is invoked before each item is submitted, with a 1-based
// index. It is a notification only: its work must be side effects, and it
// must not block. A panic in the callback aborts the run.
type ProgressFunc[T any] func(index, total int, item T)

// Option configures a Runner.
type Option[T any] func(*Runner[T])

// WithPolicy sets the error policy. The default is continue.
func WithPolicy[T any](policy Policy) Option[T] {
	return func(r *Runner[T]) { r.policy = policy }
}

// WithProgressFunc sets the per-item progress callback.
func WithProgressFunc[T any](fn ProgressFunc[T]) Option[T] {
	return func(r *Runner[T]) { r.progress = fn }
}

// WithItemTimeout bounds each processing call with a context deadline. A
// deadline hit is recorded as a timeout outcome instead of hanging the
// batch. Zero disables the timeout.
func WithItemTimeout[T any](timeout time.Duration) Option[T] {
	return func(r *Runner[T]) { r.itemTimeout = timeout }
}

// WithTracker attaches a Tracker that the runner advances after each
// completed item, for rate and ETA display.
func WithTracker[T any](tracker *Tracker) Option[T] {
	return func(r *Runner[T]) { r.tracker = tracker }
}

// Runner drives work items through a processing function under a fixed
// policy. Runs are strictly sequential and preserve submission order in
// their outcomes; RunConcurrent is the explicit opt-out.
type Runner[T any] struct {
	policy      Policy
	progress    ProgressFunc[T]
	itemTimeout time.Duration
	tracker     *Tracker
}

// NewRunner creates a Runner with the given options.
func NewRunner[T any](opts ...Option[T]) *Runner[T] {
	r := &Runner[T]{policy: PolicyContinue}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes items in order and returns the summary.
//
// Empty input yields an empty summary without invoking process. Fatal
// errors (engine initialization, configuration) and context cancellation
// propagate regardless of policy; every other failure is handled per the
// configured policy. Under abort, the original error is returned and no
// summary is produced.
func (r *Runner[T]) Run(ctx context.Context, items []T, process ProcessFunc[T]) (*Summary[T], error) {
	logger := logging.FromContext(ctx)
	runID := newRunID()
	start := time.Now()
	total := len(items)
	outcomes := make([]Outcome[T], 0, total)

	logger.Info().Str("run_id", runID).Int("total", total).
		Str("policy", string(r.policy)).Msg("batch run started")

	for i, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if r.progress != nil {
			r.progress(i+1, total, item)
		}

		outcome, err := r.processOne(ctx, item, process)
		if err != nil {
			// Fatal or aborting failure: the batch ends without a summary.
			return nil, err
		}

		outcomes = append(outcomes, outcome)
		if r.tracker != nil {
			r.tracker.Add(1)
		}

		if !outcome.Success && r.policy == PolicyStop {
			logger.Warn().Str("run_id", runID).Int("index", i+1).
				Msg("stopping batch after failure")
			break
		}
	}

	summary := newSummary(runID, total, outcomes, time.Since(start))
	logger.Info().Str("run_id", runID).
		Int("success", summary.SuccessCount).
		Int("failure", summary.FailureCount).
		Dur("elapsed", summary.TotalElapsed).
		Msg("batch run finished")
	return summary, nil
}

// processOne invokes process for a single item and folds the result into an
// outcome. A non-nil error return means the whole run must end: the error
// is fatal, the parent context was canceled, or the policy is abort.
func (r *Runner[T]) processOne(ctx context.Context, item T, process ProcessFunc[T]) (Outcome[T], error) {
	itemCtx := ctx
	cancel := func() {}
	if r.itemTimeout > 0 {
		itemCtx, cancel = context.WithTimeout(ctx, r.itemTimeout)
	}

	itemStart := time.Now()
	payload, err := process(itemCtx, item)
	elapsed := time.Since(itemStart)
	cancel()

	if err == nil {
		return Outcome[T]{Item: item, Success: true, Payload: payload, Elapsed: elapsed}, nil
	}

	if engine.IsFatal(err) {
		return Outcome[T]{}, err
	}
	// A canceled parent context ends the run; an expired per-item deadline
	// is an ordinary timeout outcome.
	if ctx.Err() != nil {
		return Outcome[T]{}, ctx.Err()
	}
	if r.policy == PolicyAbort {
		return Outcome[T]{}, err
	}

	desc := engine.Describe(err)
	return Outcome[T]{Item: item, Success: false, Error: &desc, Elapsed: elapsed}, nil
}

// RunConcurrent processes items with up to workers goroutines. Only the
// continue policy is supported: outcomes keep submission order, but
// processing order and progress notifications are unordered. Each worker
// must use its own engine handle; sharing one handle across workers is not
// guarded here.
func (r *Runner[T]) RunConcurrent(ctx context.Context, items []T, process ProcessFunc[T], workers int) (*Summary[T], error) {
	if r.policy != PolicyContinue {
		return nil, ErrConcurrentPolicy
	}
	if workers < 1 {
		workers = 1
	}

	runID := newRunID()
	start := time.Now()
	total := len(items)
	outcomes := make([]Outcome[T], total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if r.progress != nil {
				r.progress(i+1, total, item)
			}
			outcome, err := r.processOne(gctx, item, process)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			if r.tracker != nil {
				r.tracker.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return newSummary(runID, total, outcomes, time.Since(start)), nil
}
