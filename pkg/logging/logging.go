// Package logging builds the process logger: console output teed with a
// per-run log file, mirroring the report/log split of the analysis runs.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New constructs a logger writing to stderr and, when path is non-empty,
// to a log file. The file is truncated at startup so each run's log
// stands alone.
func New(path string) (*zap.Logger, error) {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapcore.InfoLevel),
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(f), zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
