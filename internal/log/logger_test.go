package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focusflow.log")
	closer, err := Setup(Options{Level: "info", File: path})
	require.NoError(t, err)

	Debug().Msg("hidden")
	Info().Str("phase", "Session").Msg("phase ended")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "phase ended", entry["message"])
	assert.Equal(t, "Session", entry["phase"])

	_, err = Setup(Options{})
	require.NoError(t, err)
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	got, err := DefaultFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/focusflow/focusflow.log", got)
}
