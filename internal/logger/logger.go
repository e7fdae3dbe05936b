package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level controls which messages are emitted
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

var (
	mu    sync.Mutex
	level Level     = LevelWarn
	out   io.Writer = os.Stderr
)

// SetLevel sets the global log level. The CLI maps --verbose to
// LevelDebug and --debug to LevelInfo.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output (used by tests)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Logger emits leveled messages with a fixed set of fields attached
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

type fieldLogger struct {
	fields map[string]interface{}
}

// WithField returns a logger with a single field attached
func WithField(key string, value interface{}) Logger {
	return fieldLogger{fields: map[string]interface{}{key: value}}
}

// WithFields returns a logger with multiple fields attached
func WithFields(fields map[string]interface{}) Logger {
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return fieldLogger{fields: copied}
}

// Package-level logging without fields

func Debug(format string, args ...interface{}) { emit(LevelDebug, nil, format, args...) }
func Info(format string, args ...interface{})  { emit(LevelInfo, nil, format, args...) }
func Warn(format string, args ...interface{})  { emit(LevelWarn, nil, format, args...) }
func Error(format string, args ...interface{}) { emit(LevelError, nil, format, args...) }

func (l fieldLogger) Debug(format string, args ...interface{}) {
	emit(LevelDebug, l.fields, format, args...)
}

func (l fieldLogger) Info(format string, args ...interface{}) {
	emit(LevelInfo, l.fields, format, args...)
}

func (l fieldLogger) Warn(format string, args ...interface{}) {
	emit(LevelWarn, l.fields, format, args...)
}

func (l fieldLogger) Error(format string, args ...interface{}) {
	emit(LevelError, l.fields, format, args...)
}

func (l fieldLogger) WithField(key string, value interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		merged[k] = v
	}
	merged[key] = value
	return fieldLogger{fields: merged}
}

func (l fieldLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return fieldLogger{fields: merged}
}

var levelTags = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func emit(l Level, fields map[string]interface{}, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if l < level {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
		}
		msg = msg + " [" + strings.Join(parts, " ") + "]"
	}

	fmt.Fprintf(out, "[%s] %s\n", levelTags[l], msg)
}
