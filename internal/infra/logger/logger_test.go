package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&config.AppConfig{LogLevel: "info", Environment: "production"}, &buf)

	Component(log, "poller").WithField("poll_id", "abc").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "poller", entry["component"])
	assert.Equal(t, "abc", entry["poll_id"])
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&config.AppConfig{LogLevel: "loud", Environment: "development"}, &buf)

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&config.AppConfig{LogLevel: "debug", Environment: "staging"}, &buf)

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}
