// Package kvtest contiene la suite de comportamiento común a todos los kv.Store.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"cow-catalog/internal/ports/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run ejecuta la suite contra el store. El store debe arrancar vacío
// para las keys usadas aquí.
func Run(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "@kvtest_missing")
		assert.True(t, errors.Is(err, kv.ErrNotFound), "got %v", err)
	})

	t.Run("set then get", func(t *testing.T) {
		blob := []byte(`[{"id":"1","earTag":"1234"}]`)
		require.NoError(t, s.Set(ctx, "@kvtest_cows", blob))

		got, err := s.Get(ctx, "@kvtest_cows")
		require.NoError(t, err)
		assert.JSONEq(t, string(blob), string(got))
	})

	t.Run("set replaces whole blob", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "@kvtest_filters", []byte(`{"searchQuery":"12","statusFilter":"all","penFilter":"A1"}`)))
		require.NoError(t, s.Set(ctx, "@kvtest_filters", []byte(`{"searchQuery":"","statusFilter":"all","penFilter":""}`)))

		got, err := s.Get(ctx, "@kvtest_filters")
		require.NoError(t, err)
		assert.JSONEq(t, `{"searchQuery":"","statusFilter":"all","penFilter":""}`, string(got))
	})

	t.Run("remove several keys", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "@kvtest_cows", "@kvtest_filters", "@kvtest_never_written"))

		_, err := s.Get(ctx, "@kvtest_cows")
		assert.ErrorIs(t, err, kv.ErrNotFound)
		_, err = s.Get(ctx, "@kvtest_filters")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("empty key rejected or absent", func(t *testing.T) {
		err := s.Set(ctx, "", []byte("x"))
		assert.Error(t, err)
	})
}
