package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rs/zerolog"
)

func TestNewReadsLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, New().GetLevel())

	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, New().GetLevel())

	t.Setenv("LOG_LEVEL", "verbose")
	assert.Equal(t, zerolog.InfoLevel, New().GetLevel())
}

func TestNewReadsLevelFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "")
	assert.NoError(t, os.Unsetenv("LOG_LEVEL"))

	assert.Equal(t, zerolog.DebugLevel, New().GetLevel())
}

func TestSetLevelFiltersAndAddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := SetLevel(&buf, zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	assert.Equal(t, 0, buf.Len())

	log.Info().Str("student_id", "s1").Msg("enrolled")
	var entry map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "enrolled", entry["message"])
	assert.Equal(t, "s1", entry["student_id"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime)
	_, hasCaller := entry["caller"]
	assert.True(t, hasCaller)
}
