package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NielsdaWheelz/rolesmanifest/internal/config"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn", Format: "console"}, false, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown", zap.String("file", "a.json"))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"file": "a.json"`)
}

func TestNew_VerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "error", Format: "console"}, true, &buf)
	require.NoError(t, err)

	logger.Debug("scan", zap.Int("candidates", 3))
	assert.Contains(t, buf.String(), "scan")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "info", Format: "json"}, false, &buf)
	require.NoError(t, err)

	logger.Info("wrote manifest", zap.Int("entries", 2))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "wrote manifest", line["msg"])
	assert.EqualValues(t, 2, line["entries"])
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"}, false, &bytes.Buffer{})
	assert.Error(t, err)
}
