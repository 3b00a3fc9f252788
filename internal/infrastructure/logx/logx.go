package logx

import (
	"strings"

	"bitprice-service/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
)

func init() {
	var err error
	logger, err = newLogger(appConfig().LogLevel)
	if err != nil {
		panic(err)
	}
}

// appConfig honours the CONFIG_FILE overlay; a broken file falls back to env
// so the logger still comes up and bootstrap reports the parse error.
func appConfig() config.Config {
	cfg, err := config.FromEnvAndFile()
	if err != nil {
		return config.Load()
	}
	return cfg
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}
	return zapCfg.Build(zap.AddCaller())
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}
