package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"cow-catalog/internal/adapters/storage/memory"
	"cow-catalog/internal/ports/kv"
	"cow-catalog/internal/ports/kv/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	kv.Store
	gets   int
	setErr error
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	if c.setErr != nil {
		return c.setErr
	}
	return c.Store.Set(ctx, key, value)
}

func TestKV_Behaviour(t *testing.T) {
	kvtest.Run(t, New(memory.NewKV(), time.Minute))
}

func TestKV_ServesRepeatedReadsFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: memory.NewKV()}
	s := New(backend, time.Minute)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	for i := 0; i < 3; i++ {
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))
	}
	assert.Zero(t, backend.gets)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	assert.Equal(t, 1, backend.gets, "absent keys are cached too")
}

func TestKV_FailedWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: memory.NewKV()}
	s := New(backend, time.Minute)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	backend.setErr = errors.New("disk full")
	assert.Error(t, s.Set(ctx, "k", []byte("v2")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got), "value from backend, not the failed write")
	assert.Equal(t, 1, backend.gets)
}

func TestKV_RemoveInvalidates(t *testing.T) {
	ctx := context.Background()
	s := New(memory.NewKV(), time.Minute)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	require.NoError(t, s.Remove(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

// racingStore hace un Get sobre el cache mientras el backend todavía tiene el valor,
// como lo haría otra goroutine entre el borrado y la invalidación.
type racingStore struct {
	kv.Store
	onRemove func()
}

func (r *racingStore) Remove(ctx context.Context, keys ...string) error {
	if r.onRemove != nil {
		r.onRemove()
	}
	return r.Store.Remove(ctx, keys...)
}

func TestKV_RemoveDoesNotLeaveStaleEntry(t *testing.T) {
	ctx := context.Background()
	backend := &racingStore{Store: memory.NewKV()}
	s := New(backend, time.Minute)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	backend.onRemove = func() {
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))
	}

	require.NoError(t, s.Remove(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
