package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"DEBUG":   Debug,
		" warn ":  Warn,
		"warning": Warn,
		"error":   Error,
		"nope":    Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestZeroLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "cow-catalog", Output: &buf})

	l.With(map[string]any{"component": "catalog"}).Error("save failed", map[string]any{
		"err":  errors.New("disk full"),
		"cows": 3,
		"":     "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "save failed", entry["message"])
	assert.Equal(t, "cow-catalog", entry["app"])
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "disk full", entry["err"])
	assert.EqualValues(t, 3, entry["cows"])
	assert.NotContains(t, entry, "")
}

func TestZeroLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatJSON, Output: &buf})

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	l.Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

func TestZeroLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Output: &buf})

	l.Info("cow registered", map[string]any{"ear_tag": "1234"})

	out := buf.String()
	assert.True(t, strings.Contains(out, "cow registered"), out)
	assert.Contains(t, out, "ear_tag=1234")
}
