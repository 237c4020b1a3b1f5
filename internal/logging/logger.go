// Package logging wraps zap for the one way this repository ever logs:
// a single structured logger built once from the --log-level flag and
// threaded through the repository Context to every collaborator that
// wants to report something non-fatal (a failed index write, a skipped
// watch event) without aborting the command.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

// NewLogger builds a production-configured zap logger at the given
// level ("debug", "info", "warn", "error", ...).
func NewLogger(level string) (*Logger, error) {
	config := zap.NewProductionConfig()

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{logger}, nil
}
