package config

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/hecto/internal/input/key"
	"github.com/dshills/hecto/internal/terminal"
)

// Terminal backends.
const (
	BackendTcell = "tcell"
	BackendBytes = "bytes"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level written ("debug", "info", "warn", "error").
	Level string

	// File receives log output. Empty discards logs while the terminal is raw.
	File string
}

// KeysConfig provides type-safe access to key bindings.
type KeysConfig struct {
	// Quit ends the session, e.g. "Ctrl+Q" or "<C-q>".
	Quit string
}

// TerminalConfig provides type-safe access to terminal settings.
type TerminalConfig struct {
	// Backend selects "tcell" or "bytes".
	Backend string

	// MaxReadErrors aborts after this many consecutive failed reads; 0 never aborts.
	MaxReadErrors int
}

// ScreenConfig provides type-safe access to screen settings.
type ScreenConfig struct {
	// Farewell is printed when the session ends.
	Farewell string
}

// DebugConfig provides type-safe access to diagnostic settings.
type DebugConfig struct {
	// Echo prints a description of every event read.
	Echo bool
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Keys returns type-safe access to key bindings.
func (c *Config) Keys() KeysConfig {
	return KeysConfig{
		Quit: c.getStringOr("keys.quit", "Ctrl+Q"),
	}
}

// Terminal returns type-safe access to terminal settings.
func (c *Config) Terminal() TerminalConfig {
	return TerminalConfig{
		Backend:       c.getStringOr("terminal.backend", BackendTcell),
		MaxReadErrors: c.getIntOr("terminal.maxReadErrors", 0),
	}
}

// Screen returns type-safe access to screen settings.
func (c *Config) Screen() ScreenConfig {
	return ScreenConfig{
		Farewell: c.getStringOr("screen.farewell", "Goodbye."),
	}
}

// Debug returns type-safe access to diagnostic settings.
func (c *Config) Debug() DebugConfig {
	return DebugConfig{
		Echo: c.getBoolOr("debug.echo", false),
	}
}

// QuitKey parses the configured quit binding.
func (c *Config) QuitKey() (key.Event, error) {
	spec := c.Keys().Quit
	ev, err := key.Parse(spec)
	if err != nil {
		return key.Event{}, &ValidationError{Path: "keys.quit", Message: err.Error(), Value: spec}
	}
	return ev, nil
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every section and returns all problems found, joined.
func (c *Config) Validate() error {
	var errs []error

	logging := c.Logging()
	if !slices.Contains(logLevels, strings.ToLower(logging.Level)) {
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown log level", Value: logging.Level})
	}

	tc := c.Terminal()
	backendOK := tc.Backend == BackendTcell || tc.Backend == BackendBytes
	if !backendOK {
		errs = append(errs, &ValidationError{Path: "terminal.backend", Message: "must be tcell or bytes", Value: tc.Backend})
	}
	if tc.MaxReadErrors < 0 {
		errs = append(errs, &ValidationError{Path: "terminal.maxReadErrors", Message: "must not be negative", Value: tc.MaxReadErrors})
	}

	// A quit key the backend never reports would leave the session
	// stuck in raw mode with no way out.
	if quit, err := c.QuitKey(); err != nil {
		errs = append(errs, err)
	} else if backendOK && !reportsKey(tc.Backend, quit) {
		errs = append(errs, &ValidationError{
			Path:    "keys.quit",
			Message: "the " + tc.Backend + " backend never reports " + quit.String(),
			Value:   c.Keys().Quit,
		})
	}

	c.Screen()
	c.Debug()

	configErrs := c.ConfigErrors()
	for _, path := range slices.Sorted(maps.Keys(configErrs)) {
		errs = append(errs, configErrs[path])
	}

	return errors.Join(errs...)
}

// reportsKey reports whether the named backend can deliver ev.
func reportsKey(backend string, ev key.Event) bool {
	if backend == BackendBytes {
		return terminal.ByteReports(ev)
	}
	return terminal.TcellReports(ev)
}

// These methods only return the default for ErrSettingNotFound.
// Type errors are recorded and return the default to avoid breaking callers.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns a copy of the errors recorded during section access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.configErrors)
}
