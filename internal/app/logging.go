package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a string into a LogLevel.
// Unknown names fall back to LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	level, _ := LookupLogLevel(s)
	return level
}

// LookupLogLevel parses a string into a LogLevel and reports whether
// the name was recognized.
func LookupLogLevel(s string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, true
	case "info":
		return LogLevelInfo, true
	case "warn", "warning":
		return LogLevelWarn, true
	case "error":
		return LogLevelError, true
	default:
		return LogLevelInfo, false
	}
}

// field is one key=value pair attached to every line of a logger.
type field struct {
	key   string
	value any
}

// sink is the destination shared by a logger and everything derived
// from it with WithField.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
}

// Logger writes leveled, timestamped lines.
//
// The terminal belongs to the raw-mode session while hecto runs, so a
// Logger never writes to one: a nil output or an output that is a tty
// is replaced with io.Discard.
type Logger struct {
	sink   *sink
	level  LogLevel
	prefix string
	fields []field // sorted by key
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where lines are written. Nil discards them.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	return &Logger{
		sink:   &sink{out: safeOutput(cfg.Output)},
		level:  cfg.Level,
		prefix: cfg.Prefix,
	}
}

// OpenLogger creates a logger appending to the file at path. An empty
// path gives a logger that discards everything. Close releases the file.
func OpenLogger(level LogLevel, path string) (*Logger, error) {
	l := NewLogger(LoggerConfig{Level: level, Prefix: "hecto"})
	if path == "" {
		return l, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.sink.out = safeOutput(f)
	l.sink.closer = f
	return l, nil
}

// safeOutput maps outputs a raw-mode session could be corrupted by to
// io.Discard.
func safeOutput(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return io.Discard
	}
	return w
}

// Close closes the file opened by OpenLogger, if any. Loggers derived
// with WithField share the file and must not be used afterwards.
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.closer == nil {
		return nil
	}
	err := l.sink.closer.Close()
	l.sink.closer = nil
	l.sink.out = io.Discard
	return err
}

// WithField returns a logger that adds key=value to every line.
// Setting an existing key replaces its value.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := slices.Clone(l.fields)
	i, found := slices.BinarySearchFunc(fields, key, func(f field, k string) int {
		return strings.Compare(f.key, k)
	})
	if found {
		fields[i].value = value
	} else {
		fields = slices.Insert(fields, i, field{key: key, value: value})
	}

	return &Logger{sink: l.sink, level: l.level, prefix: l.prefix, fields: fields}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// log writes one line: "<time> [LEVEL] prefix: message {k=v, ...}".
func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	for i, f := range l.fields {
		if i == 0 {
			b.WriteString(" {")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", f.key, f.value)
	}
	if len(l.fields) > 0 {
		b.WriteByte('}')
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, b.String())
}
