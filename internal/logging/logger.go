// Package logging provides the levelled, structured logger used across orgscan.
//
// Initialize the logger once at startup and ask for named loggers per component:
//
//	logging.Initialize("info", map[string]string{"roster": "debug"})
//	logger := logging.GetLogger("analysis")
//	logger.Info("analyzer ready with %d employees", n)
//	logger.InfoWithFields("query finished",
//	    logging.Field("query", "underpaid"),
//	    logging.Field("issues", 3),
//	)
//
// Per-package levels accept exact names ("roster") and wildcard patterns
// ("analysis.*"); loggers without an override use the default level.
//
// Loggers bound to a context with WithContext add run_id (see WithRunID) and,
// when an OpenTelemetry span is active, trace_id and span_id.
//
// Lines are written to stderr unless SetOutput redirects them. Setting
// LOG_TIMESTAMP pins the timestamp for deterministic tests.
package logging

import (
	"context"
	"os"
	"sync"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
	// exitFunc terminates the process on Fatal; tests replace it
	exitFunc = os.Exit
)

// Initialize sets the default level and optional per-package overrides.
// An unknown default level falls back to INFO.
func Initialize(levelStr string, packageLevels ...map[string]string) error {
	level, err := ParseLevel(levelStr)
	if err != nil {
		level = INFO
	}

	globalMu.Lock()
	globalLogger = &Logger{level: level, name: "orgscan"}
	globalMu.Unlock()

	if len(packageLevels) > 0 && packageLevels[0] != nil {
		return SetPackageLogLevels(packageLevels[0])
	}
	return SetPackageLogLevels(map[string]string{})
}

// GetLogger returns a logger with the specified name, initializing the
// global logger at INFO if Initialize has not run yet
func GetLogger(name string) *Logger {
	globalMu.RLock()
	root := globalLogger
	globalMu.RUnlock()

	if root == nil {
		_ = Initialize("info")
		globalMu.RLock()
		root = globalLogger
		globalMu.RUnlock()
	}

	return &Logger{
		level:  root.level,
		name:   name,
		fields: make(map[string]interface{}),
	}
}

// Name returns the logger name used for per-package level lookups
func (l *Logger) Name() string { return l.name }

// shouldLog applies the per-package override first, then the logger level
func (l *Logger) shouldLog(level LogLevel) bool {
	if pkgLevel := GetPackageLogLevel(l.name); pkgLevel >= 0 {
		return level >= pkgLevel
	}
	return level >= l.level
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(DEBUG) {
		l.logf(DEBUG, msg, args...)
	}
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.shouldLog(INFO) {
		l.logf(INFO, msg, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(WARN) {
		l.logf(WARN, msg, args...)
	}
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.shouldLog(ERROR) {
		l.logf(ERROR, msg, args...)
	}
}

// Fatal logs a fatal message and exits the program with code 1
func (l *Logger) Fatal(msg string, args ...interface{}) {
	if l.shouldLog(FATAL) {
		l.logf(FATAL, msg, args...)
		exitFunc(1)
	}
}

// ErrorWithErr logs msg followed by err
func (l *Logger) ErrorWithErr(msg string, err error) {
	if l.shouldLog(ERROR) {
		l.logWithFields(ERROR, msg, Field("error", err))
	}
}

// DebugWithFields logs a debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields ...LogField) {
	if l.shouldLog(DEBUG) {
		l.logWithFields(DEBUG, msg, fields...)
	}
}

// InfoWithFields logs an info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields ...LogField) {
	if l.shouldLog(INFO) {
		l.logWithFields(INFO, msg, fields...)
	}
}

// WarnWithFields logs a warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields ...LogField) {
	if l.shouldLog(WARN) {
		l.logWithFields(WARN, msg, fields...)
	}
}

// ErrorWithFields logs an error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields ...LogField) {
	if l.shouldLog(ERROR) {
		l.logWithFields(ERROR, msg, fields...)
	}
}

// WithName returns a copy of the logger under a different name. Fields are kept.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		level:  l.level,
		name:   name,
		fields: cloneFields(l.fields),
		ctx:    l.ctx,
	}
}

// WithField returns a logger that adds key=value to every line
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Field(key, value))
}

// WithFields returns a logger that adds all fields to every line
func (l *Logger) WithFields(fields ...LogField) *Logger {
	next := &Logger{
		level:  l.level,
		name:   l.name,
		fields: cloneFields(l.fields),
		ctx:    l.ctx,
	}
	for _, f := range fields {
		next.fields[f.Key] = f.Value
	}
	return next
}

// WithContext returns a logger that reads run_id, trace_id and span_id from ctx
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		level:  l.level,
		name:   l.name,
		fields: cloneFields(l.fields),
		ctx:    ctx,
	}
}
