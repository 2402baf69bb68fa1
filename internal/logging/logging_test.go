package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  slog.Level
	}{
		"debug":          {input: "debug", want: slog.LevelDebug},
		"info uppercase": {input: "INFO", want: slog.LevelInfo},
		"warn":           {input: "warn", want: slog.LevelWarn},
		"error":          {input: "error", want: slog.LevelError},
		"unknown":        {input: "verbose", want: slog.LevelWarn},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_TextPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "info", "text", true).With("component", "readstate")

	logger.Debug("hidden")
	logger.Warn("persisting failed", "version", "2.4.0")

	assert.Equal(t, "WRN persisting failed component=readstate version=2.4.0\n", buf.String())
}

func TestNew_Groups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "debug", "text", true).WithGroup("store").With("backend", "sqlite")

	logger.Info("opened", "path", "x.db")

	assert.Equal(t, "INF opened store.backend=sqlite store.path=x.db\n", buf.String())
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, "warn", "json", false)

	logger.Info("hidden")
	logger.Error("boom", "error", "disk full")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "boom", rec["msg"])
	assert.Equal(t, "disk full", rec["error"])
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Discard().Error("dropped")
	})
}
