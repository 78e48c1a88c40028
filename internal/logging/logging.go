package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level    string
	Encoding string
	File     string
}

// New builds a zap logger that writes to cfg.File. The TUI owns stdout, so
// there is no console sink; an empty File gives a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	file := strings.TrimSpace(cfg.File)
	if file == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		l, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = l
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "json"
	if strings.EqualFold(cfg.Encoding, "console") {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{file}
	zc.ErrorOutputPaths = []string{file}
	zc.Sampling = nil

	return zc.Build()
}
