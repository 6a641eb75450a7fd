// Package logger builds the zap logger shared by the CLI and the dashboard.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dallionking/goldsim/internal/config"
)

// NewLogger creates a zap.Logger from cfg. When cfg.File is set, output goes
// to that file (the TUI owns stdout); otherwise to stderr. verbose forces
// debug level.
func NewLogger(cfg config.LoggerConfig, verbose bool) (*zap.Logger, error) {
	level := cfg.Level
	if verbose {
		level = "debug"
	}
	logLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(logLevel)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}

	return zc.Build()
}
