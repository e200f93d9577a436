package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
		"loud":  log.InfoLevel,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "seed", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "seed=7")
}

func TestSetupFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.log")

	for _, msg := range []string{"first", "second"} {
		logger, closeLog, err := SetupFileLogger(path, "info")
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closeLog())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestSetupFileLoggerBadPath(t *testing.T) {
	_, _, err := SetupFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), "info")
	require.Error(t, err)
}
