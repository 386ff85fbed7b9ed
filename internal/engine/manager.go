// Package engine owns the lifecycle of opaque OCR engine handles: a
// Manager that creates and disposes a single handle, and a Cache that keys
// managed handles by normalized configuration so expensive engine
// construction happens once per configuration.
//
// The engine itself is an external collaborator reached only through the
// Factory callback; this package never inspects what the factory returns
// beyond its Close method.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// Engine is the contract an external engine instance must satisfy. Disposal
// must release native and model memory deterministically.
type Engine interface {
	Close() error
}

// Factory constructs an engine instance for a configuration. It is invoked
// lazily, at most once per Ready handle.
type Factory func(ctx context.Context, key Key) (Engine, error)

// State is the lifecycle state of a managed handle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateDisposed      State = "disposed"
)

// Handle is an opaque reference to a live engine instance, tagged with the
// configuration key it was built for. Handles are owned exclusively by the
// Manager or Cache entry that created them and must be released through
// them, never discarded to the garbage collector.
type Handle struct {
	key    Key
	engine Engine
}

// Key returns the configuration key the handle was built for.
func (h *Handle) Key() Key { return h.key }

// Engine returns the underlying engine instance.
func (h *Handle) Engine() Engine { return h.engine }

// Manager owns creation and teardown of one engine handle. The zero state
// is Uninitialized; Initialize moves it to Ready, Cleanup to Disposed.
// Disposed is terminal: a fresh configuration gets a fresh Manager.
type Manager struct {
	key     Key
	factory Factory

	mu     sync.Mutex
	state  State
	handle *Handle
	logger zerolog.Logger
}

// NewManager creates a Manager for the given configuration. The factory is
// not invoked until Initialize.
func NewManager(key Key, factory Factory) *Manager {
	return &Manager{
		key:     key,
		factory: factory,
		state:   StateUninitialized,
		logger:  zerolog.Nop(),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Initialize constructs the engine handle if necessary and returns it.
// Idempotent: a Ready manager returns the existing handle without touching
// the factory. On factory failure the state stays Uninitialized and an
// *InitError is returned; no partially-ready handle is ever observable.
func (m *Manager) Initialize(ctx context.Context) (*Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateReady:
		return m.handle, nil
	case StateDisposed:
		return nil, &InitError{
			Cause: CauseRuntime,
			Msg:   "manager for " + m.key.String() + " is disposed",
		}
	case StateUninitialized:
	}

	logger := logging.FromContext(ctx)
	logger.Info().Str("key", m.key.String()).Msg("initializing engine")

	eng, err := m.factory(ctx, m.key)
	if err != nil {
		logger.Error().Err(err).Str("key", m.key.String()).Msg("engine initialization failed")
		if IsFatal(err) {
			return nil, err
		}
		return nil, &InitError{Cause: CauseRuntime, Msg: "factory failed for " + m.key.String(), Err: err}
	}

	m.handle = &Handle{key: m.key, engine: eng}
	m.state = StateReady
	m.logger = logger
	logger.Debug().Str("key", m.key.String()).Msg("engine ready")
	return m.handle, nil
}

// Cleanup disposes the handle. Idempotent: repeated calls, or a call before
// Initialize, leave the manager Disposed and close the engine at most once.
func (m *Manager) Cleanup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateDisposed {
		return nil
	}

	handle := m.handle
	m.handle = nil
	m.state = StateDisposed

	if handle == nil {
		return nil
	}

	m.logger.Debug().Str("key", m.key.String()).Msg("disposing engine")
	if err := handle.engine.Close(); err != nil {
		m.logger.Warn().Err(err).Str("key", m.key.String()).Msg("engine close reported error")
		return err
	}
	return nil
}

// With runs fn inside a scoped acquisition: the handle is initialized on
// entry and cleaned up on every exit path. When fn fails, its error is
// returned and any cleanup error is only logged, never allowed to mask it.
// A cleanup failure surfaces only when fn itself succeeded.
func (m *Manager) With(ctx context.Context, fn func(*Handle) error) (err error) {
	handle, initErr := m.Initialize(ctx)
	if initErr != nil {
		return initErr
	}

	defer func() {
		cleanupErr := m.Cleanup()
		if cleanupErr == nil {
			return
		}
		if err != nil {
			logger := logging.FromContext(ctx)
			logger.Warn().Err(cleanupErr).
				Str("key", m.key.String()).
				Msg("cleanup failed on scope exit")
			return
		}
		err = cleanupErr
	}()

	return fn(handle)
}
