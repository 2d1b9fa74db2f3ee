package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdm0006/salesjanitor/pkg/config"
)

func TestNewJSONCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, config.LoggingConfig{Level: "info", Format: "json"}, "salesclean")
	l.Debug("hidden")
	l.Info("stage done", "rows", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "stage done", rec["msg"])
	assert.Equal(t, "salesclean", rec["cmd"])
	_, err := uuid.Parse(rec["run_id"].(string))
	assert.NoError(t, err)
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, config.LoggingConfig{Level: "debug", Format: "text"}, "salesmine").Debug("x")
	assert.Contains(t, buf.String(), "cmd=salesmine")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
