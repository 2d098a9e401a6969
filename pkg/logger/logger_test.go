package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/killallgit/cardsheet-api/pkg/config"
)

func TestBuild_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := build(config.LoggingConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("card search completed", zap.Int("rows", 2))
	require.NoError(t, l.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "card search completed", entry["msg"])
	assert.Equal(t, 2.0, entry["rows"])
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := build(config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("fetched search page", zap.Int("page", 1))
	require.NoError(t, l.Sync())

	assert.Contains(t, buf.String(), "fetched search page")
	assert.Contains(t, buf.String(), `"page": 1`)
}

func TestBuild_Errors(t *testing.T) {
	_, err := build(config.LoggingConfig{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "invalid log level")

	_, err = build(config.LoggingConfig{Format: "xml"}, zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "unknown log format")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardsheet.log")
	l, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path, MaxSize: 1})
	require.NoError(t, err)
	l.Info("written to file")
	require.NoError(t, l.Sync())
	assert.FileExists(t, path)

	_, err = New(config.LoggingConfig{Output: "file"})
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}
