package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/StephenKaylonChan/ocrkit/internal/logging"
)

// Cache is a keyed registry of lifecycle-managed engine handles. It avoids
// re-running expensive engine construction for a configuration that was
// already built in this session.
//
// A Cache has an explicit lifetime owned by its caller: construct one per
// logical session, pass it down, and CleanupAll when the session ends. All
// mutation is serialized behind a mutex so a future parallel caller cannot
// race GetOrCreate against CleanupAll; using a handle for inference
// concurrently with its own disposal remains the caller's responsibility.
type Cache struct {
	mu       sync.Mutex
	managers map[Key]*Manager
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{managers: make(map[Key]*Manager)}
}

// GetOrCreate returns the Ready handle for key, building it through an
// internal Manager on first use. The factory runs at most once per key
// between CleanupAll calls; both hits and misses return the identical
// handle instance.
func (c *Cache) GetOrCreate(ctx context.Context, key Key, factory Factory) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	manager, ok := c.managers[key]
	if !ok {
		manager = NewManager(key, factory)
		c.managers[key] = manager
	}

	handle, err := manager.Initialize(ctx)
	if err != nil {
		// A failed manager holds no resources; drop it so a later call
		// can retry construction from scratch.
		if manager.State() != StateReady {
			delete(c.managers, key)
		}
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug().
		Str("key", key.String()).
		Bool("hit", ok).
		Int("cached", len(c.managers)).
		Msg("engine cache lookup")
	return handle, nil
}

// Len reports the number of cached configurations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.managers)
}

// CleanupAll disposes every cached handle and empties the registry.
// Idempotent and safe on an empty cache. After it returns, no handle
// reachable through the cache is Ready; a subsequent GetOrCreate for the
// same key builds a fresh handle.
func (c *Cache) CleanupAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for key, manager := range c.managers {
		if err := manager.Cleanup(); err != nil {
			errs = append(errs, err)
		}
		delete(c.managers, key)
	}
	return errors.Join(errs...)
}
