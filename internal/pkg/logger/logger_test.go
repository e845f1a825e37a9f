package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("hidden")
	Warn().Str("op", "insert").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "insert", entry["op"])
	assert.Contains(t, entry, "time")
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom("DEBUG", "Text")
	assert.Equal(t, DebugLevel, cfg.Level)
	assert.True(t, cfg.Pretty)

	cfg = ConfigFrom("error", "json")
	assert.Equal(t, ErrorLevel, cfg.Level)
	assert.False(t, cfg.Pretty)
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, zerologLevel("loud"))
	assert.Equal(t, zerolog.DebugLevel, zerologLevel(DebugLevel))
}

func TestPackageLevelEventsUseConfiguredLogger(t *testing.T) {
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})

	Debug().Int64("studentID", 4).Msg("generated key")

	assert.Contains(t, buf.String(), `"studentID":4`)
}
