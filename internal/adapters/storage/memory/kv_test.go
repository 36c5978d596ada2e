package memory

import (
	"context"
	"testing"

	"cow-catalog/internal/ports/kv/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_Behaviour(t *testing.T) {
	kvtest.Run(t, NewKV())
}

func TestKV_StoresCopies(t *testing.T) {
	ctx := context.Background()
	s := NewKV()

	blob := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", blob))
	blob[2] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = '!'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, `{"a":1}`, string(again))
	assert.Equal(t, 1, s.Len())
}
