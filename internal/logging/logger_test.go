package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFileWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "log.jsonl")
	rt, err := NewFile(path, slog.LevelInfo)
	require.NoError(t, err)

	rt.Logger.Info("session finished", "wpm", 42)
	rt.Logger.Debug("hidden")
	require.NoError(t, rt.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "session finished", entry["msg"])
	require.EqualValues(t, 42, entry["wpm"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	rt := NewText(&buf, slog.LevelInfo)
	rt.Logger.Info("listening", "addr", ":4000")
	require.Contains(t, buf.String(), "addr=:4000")
	require.NoError(t, rt.Close())
}

func TestDiscardClose(t *testing.T) {
	require.NoError(t, Discard().Close())
}
