package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrCreate(t *testing.T) {
	cache := NewCache()
	eng := &fakeEngine{}
	calls := 0
	factory := countingFactory(&calls, eng)
	key := MustKey("en")

	first, err := cache.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// Hit: identical handle, factory not reinvoked.
	second, err := cache.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheDistinctConfigurations(t *testing.T) {
	cache := NewCache()
	calls := 0
	factory := countingFactory(&calls, &fakeEngine{}, &fakeEngine{}, &fakeEngine{})

	en, err := cache.GetOrCreate(context.Background(), MustKey("en"), factory)
	require.NoError(t, err)
	ch, err := cache.GetOrCreate(context.Background(), MustKey("ch"), factory)
	require.NoError(t, err)
	flagged, err := cache.GetOrCreate(context.Background(), MustKey("en", FlagUnwarp), factory)
	require.NoError(t, err)

	assert.NotSame(t, en, ch)
	assert.NotSame(t, en, flagged)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, cache.Len())

	// Alias and flag-order variants map to a cached entry.
	aliased, err := cache.GetOrCreate(context.Background(), MustKey("english"), factory)
	require.NoError(t, err)
	assert.Same(t, en, aliased)
	assert.Equal(t, 3, calls)
}

func TestCacheFailedConstructionRetries(t *testing.T) {
	cache := NewCache()
	attempts := 0
	eng := &fakeEngine{}
	factory := func(_ context.Context, _ Key) (Engine, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("transient")
		}
		return eng, nil
	}

	_, err := cache.GetOrCreate(context.Background(), MustKey("en"), factory)
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	handle, err := cache.GetOrCreate(context.Background(), MustKey("en"), factory)
	require.NoError(t, err)
	assert.Same(t, eng, handle.Engine())
	assert.Equal(t, 2, attempts)
}

func TestCacheCleanupAll(t *testing.T) {
	cache := NewCache()
	first := &fakeEngine{}
	second := &fakeEngine{}
	calls := 0
	factory := countingFactory(&calls, first, second)

	_, err := cache.GetOrCreate(context.Background(), MustKey("en"), factory)
	require.NoError(t, err)
	_, err = cache.GetOrCreate(context.Background(), MustKey("ch"), factory)
	require.NoError(t, err)

	require.NoError(t, cache.CleanupAll())
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)

	// Idempotent.
	require.NoError(t, cache.CleanupAll())
	assert.Equal(t, 1, first.closed)
}

func TestCacheCleanupAllJoinsErrors(t *testing.T) {
	cache := NewCache()
	bad := &fakeEngine{closeErr: errors.New("close failed")}
	good := &fakeEngine{}
	calls := 0
	factory := countingFactory(&calls, bad, good)

	_, err := cache.GetOrCreate(context.Background(), MustKey("en"), factory)
	require.NoError(t, err)
	_, err = cache.GetOrCreate(context.Background(), MustKey("ch"), factory)
	require.NoError(t, err)

	err = cache.CleanupAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, bad.closeErr)
	// Every handle is disposed even when one close fails.
	assert.Equal(t, 1, bad.closed)
	assert.Equal(t, 1, good.closed)
	assert.Equal(t, 0, cache.Len())
}

func TestCacheRebuildsAfterCleanup(t *testing.T) {
	cache := NewCache()
	calls := 0
	factory := countingFactory(&calls, &fakeEngine{}, &fakeEngine{})
	key := MustKey("en")

	first, err := cache.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	require.NoError(t, cache.CleanupAll())

	rebuilt, err := cache.GetOrCreate(context.Background(), key, factory)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
	assert.Equal(t, 2, calls)
}
