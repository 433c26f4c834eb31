// Package logger provides leveled diagnostic logging for the dsm CLI tool.
//
// The logger writes to stderr, separate from the user-facing output that
// goes to stdout. This allows verbose debugging without interfering with
// normal CLI output or JSON formatting.
//
// Logging is backed by go.uber.org/zap with a console encoder. Initialize
// it from the --verbose flag:
//
//	logger.Init(verbose) // verbose=true enables Debug level
//
// By default (verbose=false), only Warn and Error messages are shown.
//
// Basic usage:
//
//	logger.Debug("probing pid file %s", path)
//	logger.Info("allocated port %d for site %s", port, id)
//	logger.Warn("stop failed for %s, continuing removal", id)
//	logger.Error("bootstrap failed: %v", err)
//
// The logger is for diagnostics; user-facing messages go through the
// output package.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.Mutex
	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	std   = build(os.Stderr)
)

// build creates a sugared console logger writing to w.
func build(w io.Writer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Sugar()
}

// Init initializes the global logger with the specified verbosity.
// When verbose is true, Debug and Info levels are enabled.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// GetLevel returns the current log level.
func GetLevel() zapcore.Level {
	return level.Level()
}

// SetOutput sets the output destination for the global logger.
// Useful for testing. Passing nil resets to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	std = build(w)
}

// current returns the active logger under the lock.
func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return std
}

// Debug logs a debug message. Only shown when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Info logs an informational message. Only shown when verbose mode is enabled.
func Info(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Warn logs a warning message. Always shown regardless of verbose mode.
func Warn(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Error logs an error message. Always shown regardless of verbose mode.
func Error(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// LogError logs an error with additional context message.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	current().Errorf("%s: %v", msg, err)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return current().Sync()
}
