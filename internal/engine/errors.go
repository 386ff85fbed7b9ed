package engine

import (
	"context"
	"errors"
	"fmt"
)

// InitCause distinguishes why an engine handle could not be constructed.
type InitCause string

const (
	// CauseMissingDependency means the underlying engine library or its
	// native runtime is not available in this build or on this host.
	CauseMissingDependency InitCause = "missing_dependency"

	// CauseRuntime means the dependency is present but construction failed
	// (model load, version gate, resource exhaustion).
	CauseRuntime InitCause = "runtime_failure"
)

// InitError reports that an engine handle could not be constructed. It is
// always fatal to the calling operation, regardless of batch policy.
type InitError struct {
	Cause InitCause
	Msg   string
	Err   error
}

func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine initialization failed (%s): %s: %v", e.Cause, e.Msg, e.Err)
	}
	return fmt.Sprintf("engine initialization failed (%s): %s", e.Cause, e.Msg)
}

func (e *InitError) Unwrap() error { return e.Err }

// ConfigError reports an unnormalizable or unsupported configuration key,
// such as an unknown language code. Always fatal.
type ConfigError struct {
	Key string
	Msg string
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("invalid configuration %q: %s", e.Key, e.Msg)
	}
	return "invalid configuration: " + e.Msg
}

// NotFoundError reports that a referenced work item or directory does not
// exist at dispatch time.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// ProcessError is an opaque per-item failure surfaced by a processing
// function. Under the continue and stop policies it becomes a per-item
// outcome instead of aborting the batch.
type ProcessError struct {
	Item    string
	Msg     string
	Err     error
	Context map[string]string
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("processing %s: %s: %v", e.Item, e.Msg, e.Err)
	}
	return fmt.Sprintf("processing %s: %s", e.Item, e.Msg)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// OutputError reports a failure at the persistence boundary. It is not
// retried.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Error descriptor kinds.
const (
	KindInit       = "initialization"
	KindConfig     = "configuration"
	KindNotFound   = "not_found"
	KindProcessing = "processing"
	KindOutput     = "output"
	KindTimeout    = "timeout"
)

// ErrorDescriptor is the fixed-shape representation of a failure carried on
// batch outcomes and reports: a kind tag, a message, and a small string
// context instead of open-ended attributes on the error value itself.
type ErrorDescriptor struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// Describe classifies err into an ErrorDescriptor. Unrecognized errors are
// reported as processing failures carrying their message verbatim.
func Describe(err error) ErrorDescriptor {
	var (
		initErr     *InitError
		configErr   *ConfigError
		notFoundErr *NotFoundError
		processErr  *ProcessError
		outputErr   *OutputError
	)

	switch {
	case errors.As(err, &initErr):
		return ErrorDescriptor{
			Kind:    KindInit,
			Message: initErr.Msg,
			Context: map[string]string{"cause": string(initErr.Cause)},
		}
	case errors.As(err, &configErr):
		ctx := map[string]string{}
		if configErr.Key != "" {
			ctx["key"] = configErr.Key
		}
		return ErrorDescriptor{Kind: KindConfig, Message: configErr.Msg, Context: ctx}
	case errors.As(err, &notFoundErr):
		return ErrorDescriptor{
			Kind:    KindNotFound,
			Message: "not found",
			Context: map[string]string{"path": notFoundErr.Path},
		}
	case errors.As(err, &processErr):
		desc := ErrorDescriptor{Kind: KindProcessing, Message: processErr.Msg, Context: processErr.Context}
		if errors.Is(err, context.DeadlineExceeded) {
			desc.Kind = KindTimeout
		}
		return desc
	case errors.As(err, &outputErr):
		return ErrorDescriptor{
			Kind:    KindOutput,
			Message: outputErr.Err.Error(),
			Context: map[string]string{"path": outputErr.Path},
		}
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorDescriptor{Kind: KindTimeout, Message: err.Error()}
	default:
		return ErrorDescriptor{Kind: KindProcessing, Message: err.Error()}
	}
}

// IsFatal reports whether err belongs to a category that must propagate to
// the caller regardless of batch policy.
func IsFatal(err error) bool {
	var (
		initErr   *InitError
		configErr *ConfigError
	)
	return errors.As(err, &initErr) || errors.As(err, &configErr)
}
