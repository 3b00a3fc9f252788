package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppConfig_HonoursConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CONFIG_FILE", path)

	cfg := appConfig()
	require.Equal(t, "debug", cfg.LogLevel)

	l, err := newLogger(cfg.LogLevel)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestAppConfig_BrokenFileFallsBackToEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := appConfig()
	require.Equal(t, "warn", cfg.LogLevel)

	l, err := newLogger(cfg.LogLevel)
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.InfoLevel))
	require.True(t, l.Core().Enabled(zap.WarnLevel))
}
