package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var log = zap.NewNop()

// Init builds the process logger. Mode "debug" selects the development
// config at debug level, any other value the production JSON config at
// info level. Non-empty extraPaths are added as log sinks next to stderr.
func Init(mode string, extraPaths ...string) error {
	var cfg zap.Config
	if mode == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.OutputPaths = []string{"stderr"}
	for _, p := range extraPaths {
		if p != "" {
			cfg.OutputPaths = append(cfg.OutputPaths, p)
		}
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	log = l
	return nil
}

// InitTestLogger replaces the process logger with a no-op logger so tests
// stay silent.
func InitTestLogger() {
	log = zap.NewNop()
}

func Sync() error {
	return log.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}
