package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevelAndFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	var buf bytes.Buffer
	InitWithOutput(&buf, "warn", "json")

	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	Log.Info("hidden")
	Log.WithField("turn", 3).Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, float64(3), entry["turn"])
}

func TestInitEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	var buf bytes.Buffer
	InitWithOutput(&buf, "error", "json")

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	_, isText := Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestInitUnknownLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	InitWithOutput(&bytes.Buffer{}, "loud", "text")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}
