package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"cow-catalog/internal/domain/cows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run ejecuta un comando completo contra un store file en dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("COWCATALOG_STORAGE_DRIVER", "file")
	t.Setenv("COWCATALOG_STORAGE_FILE_ROOT", dir)
	t.Setenv("COWCATALOG_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_SeedListReset(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	out, err := run(t, dir, "seed", "--count", "5")
	require.NoError(t, err)
	assert.Equal(t, "5 sample cows have been added!\n", out)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7, out)
	assert.True(t, strings.HasPrefix(lines[0], "EAR TAG"))
	assert.True(t, strings.HasPrefix(lines[6], "5 cows"))

	out, err = run(t, dir, "list", "--status", "Sold")
	assert.Error(t, err)
	assert.Empty(t, out)

	_, err = run(t, dir, "reset")
	require.Error(t, err)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "5 cows")

	out, err = run(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "All data has been cleared")

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "0 cows (Active: 0, In Treatment: 0, Deceased: 0)")
}

func TestCLI_ClosesStorageOnError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("COWCATALOG_STORAGE_DRIVER", "file")
	t.Setenv("COWCATALOG_STORAGE_FILE_ROOT", t.TempDir())
	t.Setenv("COWCATALOG_LOG_LEVEL", "error")

	for _, args := range [][]string{{"reset"}, {"list", "--status", "Sold"}, {"seed", "--count", "2"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			a := &app{}
			root := newRootCommand(a)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(args)

			_ = root.ExecuteContext(context.Background())
			require.NotNil(t, a.store.Store, "el storage se abrió")
			assert.True(t, a.closed)
			assert.NoError(t, a.close(), "cerrar dos veces no falla")
		})
	}
}

func TestPrintCows(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	list := []cows.Cow{{
		EarTag: "1234",
		Sex:    cows.SexFemale,
		Pen:    "A1",
		Status: cows.StatusActive,
		Weight: cows.Float(320),
		Events: []cows.CowEvent{
			{ID: "a", Type: cows.EventWeightCheck, Date: now.AddDate(0, 0, -10), Weight: cows.Float(300)},
			{ID: "b", Type: cows.EventWeightCheck, Date: now.AddDate(0, 0, -1), Weight: cows.Float(320)},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, printCows(&buf, list, now))

	out := buf.String()
	assert.Contains(t, out, "320 kg")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "2.22 kg/day")
	assert.Contains(t, out, "1 cows (Active: 1, In Treatment: 0, Deceased: 0)")
}
