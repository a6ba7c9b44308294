package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// AppLogger wraps a charmbracelet logger with the level policy used by packdocs.
type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	mu            sync.Mutex
)

// GetDefault returns the process-wide logger, creating it on first use.
func GetDefault() *AppLogger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewAppLogger(os.Stderr, os.Getenv("PACKDOCS_DEBUG") != "")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *AppLogger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

// Configure rebuilds the default logger writing to stderr. Verbose enables debug output.
func Configure(verbose bool) {
	SetDefault(NewAppLogger(os.Stderr, verbose || os.Getenv("PACKDOCS_DEBUG") != ""))
}

// NewAppLogger creates a logger writing to w. Without debug only warnings and errors are shown.
func NewAppLogger(w io.Writer, debug bool) *AppLogger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "packdocs",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return &AppLogger{logger: logger, debug: debug}
}

// Package-level convenience functions.
func Info(msg string, keyvals ...interface{}) {
	GetDefault().Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	GetDefault().Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	GetDefault().Error(msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) {
	GetDefault().Debug(msg, keyvals...)
}

func (al *AppLogger) Info(msg string, keyvals ...interface{}) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...interface{}) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...interface{}) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...interface{}) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}

// IsDebug reports whether debug output is enabled.
func (al *AppLogger) IsDebug() bool { return al.debug }

// LogPerformance records how long an operation took (debug only).
func (al *AppLogger) LogPerformance(operation string, start time.Time) {
	if al.debug {
		al.logger.Debug("Performance", "operation", operation, "duration", time.Since(start))
	}
}

// LogPerformance records how long an operation took on the default logger.
func LogPerformance(operation string, start time.Time) {
	GetDefault().LogPerformance(operation, start)
}
