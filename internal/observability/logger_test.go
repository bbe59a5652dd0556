package observability

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitializeConsole(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(Options{Level: "debug", Format: "console", Console: true, ServiceName: "autoclick"}, zapcore.AddSync(&buf))

	GetLogger().Debug("engine ready", zap.Int("limit", 10))
	Sync()

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "engine ready")
	assert.Contains(t, out, "autoclick")
	assert.Contains(t, out, `"limit": 10`)
}

func TestInitializeReplacesGlobals(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(Options{Level: "info", Format: "json", Console: true}, zapcore.AddSync(&buf))

	zap.L().Named("clicker").Info("clicking started")
	zap.L().Debug("filtered out")

	out := buf.String()
	assert.Contains(t, out, `"logger":"clicker"`)
	assert.Contains(t, out, "clicking started")
	assert.NotContains(t, out, "filtered out")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(Options{Level: "chatty", Format: "json", Console: true}, zapcore.AddSync(&buf))

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileOnly(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "autoclick.log")
	var console bytes.Buffer
	Initialize(Options{Level: "info", File: path, MaxSizeMB: 1}, zapcore.AddSync(&console))

	GetLogger().Info("written to file", zap.String("run_id", "abc"))
	Sync()

	assert.Empty(t, console.String(), "console core is disabled")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, "written to file", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "abc", entry["run_id"])
}

func TestInitializeRunsOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	Initialize(Options{Level: "info", Format: "json", Console: true}, zapcore.AddSync(&first))
	Initialize(Options{Level: "info", Format: "json", Console: true}, zapcore.AddSync(&second))

	GetLogger().Info("once")
	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
}

func TestGetLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
	Sync()
}
