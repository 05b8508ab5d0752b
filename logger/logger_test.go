package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagoyameshi/config"
)

func TestNew_WritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	conf := config.Configuration{LogPath: path, LogLevel: "debug"}

	l := New(conf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("task", "test").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "task=test")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := New(config.Configuration{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
