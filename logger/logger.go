package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProgressLogger logs the main steps of batch operations, like
// checking a whole declaration block.
var ProgressLogger = newLogger("cssom.progress", zapcore.InfoLevel)

// WarningLogger emits a warning for each non fatal error, like invalid
// property values dropped while parsing a declaration block.
var WarningLogger = newLogger("cssom.warning", zapcore.WarnLevel)

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

func newLogger(name string, minLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log.Named(name).WithOptions(zap.IncreaseLevel(minLevel))
}

// SetLevel changes the minimum level of the package loggers.
func SetLevel(l zapcore.Level) { level.SetLevel(l) }

// Replace swaps the package loggers, returning a function restoring
// the previous ones. It is meant for tests and embedding applications.
func Replace(progress, warning *zap.Logger) (restore func()) {
	oldP, oldW := ProgressLogger, WarningLogger
	ProgressLogger, WarningLogger = progress, warning
	return func() { ProgressLogger, WarningLogger = oldP, oldW }
}
