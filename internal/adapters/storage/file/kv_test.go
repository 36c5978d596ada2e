package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cow-catalog/internal/ports/kv/kvtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_Behaviour(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	kvtest.Run(t, s)
}

func TestKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "nested", "kv")

	s, err := New(root)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "@cow_catalog_cows", []byte(`[]`)))

	reopened, err := New(root)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "@cow_catalog_cows")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
