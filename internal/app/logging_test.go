package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"INFO", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"ERROR", LogLevelError},
		{" Warn ", LogLevelWarn},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLookupLogLevel(t *testing.T) {
	if level, ok := LookupLogLevel("error"); !ok || level != LogLevelError {
		t.Errorf("LookupLogLevel('error') = %v, %v", level, ok)
	}
	if _, ok := LookupLogLevel("verbose"); ok {
		t.Error("expected 'verbose' to be rejected")
	}
}

func TestNewLogger_NilOutputDiscards(t *testing.T) {
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug})
	if logger.sink.out != io.Discard {
		t.Errorf("output = %T, want io.Discard", logger.sink.out)
	}
	logger.Error("nothing to see")
}

func TestNewLogger_TerminalDiscarded(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// A regular file is not a tty and is kept.
	if got := safeOutput(f); got != io.Writer(f) {
		t.Errorf("safeOutput(file) = %T, want the file", got)
	}
	if got := safeOutput(nil); got != io.Discard {
		t.Errorf("safeOutput(nil) = %T, want io.Discard", got)
	}
}

func TestOpenLogger(t *testing.T) {
	logger, err := OpenLogger(LogLevelDebug, "")
	if err != nil {
		t.Fatalf("OpenLogger(\"\") error = %v", err)
	}
	if logger.sink.out != io.Discard {
		t.Error("expected logger without a file to discard")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "hecto.log")
	logger, err = OpenLogger(LogLevelInfo, path)
	if err != nil {
		t.Fatalf("OpenLogger(file) error = %v", err)
	}
	logger.WithField("session", "abc").Info("hello")
	logger.Debug("filtered")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	logger.Info("after close")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "[INFO] hecto: hello {session=abc}") {
		t.Errorf("log = %q", out)
	}
	if strings.Contains(out, "filtered") || strings.Contains(out, "after close") {
		t.Errorf("unexpected lines in log: %q", out)
	}

	if _, err := OpenLogger(LogLevelInfo, filepath.Join(t.TempDir(), "no", "such", "dir.log")); err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	if !strings.Contains(output, "[DEBUG]") {
		t.Error("expected DEBUG in output")
	}
	if !strings.Contains(output, "[INFO]") {
		t.Error("expected INFO in output")
	}
	if !strings.Contains(output, "[WARN]") {
		t.Error("expected WARN in output")
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Error("expected ERROR in output")
	}
	if !strings.Contains(output, "test:") {
		t.Error("expected prefix in output")
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") {
		t.Error("expected DEBUG to be filtered out")
	}
	if strings.Contains(output, "[INFO]") {
		t.Error("expected INFO to be filtered out")
	}
	if !strings.Contains(output, "[WARN]") {
		t.Error("expected WARN in output")
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Error("expected ERROR in output")
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger.Info("formatted %s %d", "test", 42)

	output := buf.String()
	if !strings.Contains(output, "formatted test 42") {
		t.Errorf("expected formatted message, got: %s", output)
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger2 := logger.WithField("key", "value")
	logger2.Info("test")

	output := buf.String()
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected field in output, got: %s", output)
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger.WithField("session", "abc").
		WithField("component", "app").
		WithField("backend", "tcell").
		Info("test")

	output := buf.String()
	if !strings.Contains(output, "{backend=tcell, component=app, session=abc}") {
		t.Errorf("expected fields in key order, got: %s", output)
	}
}

func TestLogger_WithFieldReplaces(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	first := base.WithComponent("app")
	second := first.WithComponent("loop")
	first.Info("one")
	second.Info("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], "one {component=app}") {
		t.Errorf("line 1 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "two {component=loop}") {
		t.Errorf("line 2 = %q, want the replaced value only", lines[1])
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelInfo,
		Output: &buf,
	})

	logger2 := logger.WithComponent("terminal")
	logger2.Info("test")

	output := buf.String()
	if !strings.Contains(output, "component=terminal") {
		t.Errorf("expected component in output, got: %s", output)
	}
}
