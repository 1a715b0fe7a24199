// Package logging writes structured logs to a file when REVPICK_LOG_FILE is
// set. Logging to stderr would corrupt the TUI, so it is disabled by default.
package logging

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
	logEnabled bool
)

// init configures the logger from the environment. REVPICK_LOG_FILE enables
// logging; REVPICK_LOG_LEVEL controls verbosity (debug, info, warn, error).
func init() {
	logPath := os.Getenv("REVPICK_LOG_FILE")
	if logPath == "" {
		return
	}

	level := log.InfoLevel
	switch strings.ToLower(os.Getenv("REVPICK_LOG_LEVEL")) {
	case "debug":
		level = log.DebugLevel
	case "warn", "warning":
		level = log.WarnLevel
	case "error":
		level = log.ErrorLevel
	}

	_ = Init(logPath, level)
}

// Init points the logger at the given file. Safe to call once; later calls
// are no-ops.
func Init(logPath string, level log.Level) error {
	var initErr error
	loggerOnce.Do(func() {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = err
			return
		}
		logger = log.NewWithOptions(f, log.Options{
			Level:           level,
			Prefix:          "revpick",
			ReportTimestamp: true,
		})
		logEnabled = true
	})
	return initErr
}

// SetLogger injects a custom logger, mainly for tests.
func SetLogger(l *log.Logger) {
	logger = l
	logEnabled = l != nil
}

// Debug logs at debug level when logging is enabled.
func Debug(msg string, keyvals ...any) {
	if logEnabled && logger != nil {
		logger.Debug(msg, keyvals...)
	}
}

// Warn logs at warn level when logging is enabled.
func Warn(msg string, keyvals ...any) {
	if logEnabled && logger != nil {
		logger.Warn(msg, keyvals...)
	}
}

// Op starts timing an operation and returns a completion func.
//
//	done := logging.Op("ListRevisions", "backend", "jj")
//	defer done(err)
func Op(op string, keyvals ...any) func(error) {
	if !logEnabled || logger == nil {
		return func(error) {}
	}

	start := time.Now()
	return func(err error) {
		args := make([]any, 0, len(keyvals)+6)
		args = append(args, "op", op)
		args = append(args, "duration", time.Since(start).String())
		args = append(args, keyvals...)

		if err != nil {
			args = append(args, "error", err.Error())
			logger.Error("operation failed", args...)
		} else {
			logger.Info("operation complete", args...)
		}
	}
}
