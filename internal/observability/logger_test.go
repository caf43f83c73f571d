// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wgabrys88/franz/internal/config"
)

// initBuffered resets the global logger and initializes it against an
// in-memory buffer so tests can inspect the output.
func initBuffered(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))
	return &buf
}

func TestInitialize_ConsoleFormatWithColors(t *testing.T) {
	buf := initBuffered(t, config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "franz-test",
	})

	GetLogger().Info("console message")

	output := buf.String()
	assert.Contains(t, output, "console message")
	assert.Contains(t, output, "franz-test")
	assert.Contains(t, output, levelColors[zapcore.InfoLevel]+"INFO"+colorReset)
}

func TestInitialize_JSONFormat(t *testing.T) {
	buf := initBuffered(t, config.LoggerConfig{
		Level:       "info",
		Format:      "json",
		ServiceName: "franz-json",
	})

	GetLogger().Info("structured message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "structured message", entry["msg"])
	assert.Equal(t, "franz-json", entry["logger"])
}

func TestInitialize_InvalidLevelFallsBackToInfo(t *testing.T) {
	buf := initBuffered(t, config.LoggerConfig{
		Level:       "shouting",
		Format:      "console",
		ServiceName: "franz-test",
	})

	GetLogger().Debug("hidden")
	GetLogger().Info("visible")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}

func TestInitialize_OnlyFirstCallTakesEffect(t *testing.T) {
	buf := initBuffered(t, config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "first",
	})

	var second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "second"}, zapcore.AddSync(&second))

	GetLogger().Info("after second init")

	assert.Contains(t, buf.String(), "after second init")
	assert.Empty(t, second.String())
}

func TestInitialize_FileCoreWritesJSON(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "franz.log")
	initBuffered(t, config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "franz-file",
		LogFile:     logFile,
		MaxSize:     1,
	})

	GetLogger().Info("to both sinks")
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "to both sinks", entry["msg"])
}

func TestGetLogger_FallbackBeforeInitialization(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
}
