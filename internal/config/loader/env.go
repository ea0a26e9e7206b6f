package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "HECTO_")
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "HECTO_").
func NewEnvLoader(prefix string) *EnvLoader {
	return newEnvLoader(prefix, defaultEnvMapping())
}

func newEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"HECTO_LOG_LEVEL":       "logging.level",
		"HECTO_LOG_FILE":        "logging.file",
		"HECTO_BACKEND":         "terminal.backend",
		"HECTO_MAX_READ_ERRORS": "terminal.maxReadErrors",
		"HECTO_QUIT_KEY":        "keys.quit",
		"HECTO_FAREWELL":        "screen.farewell",
		"HECTO_ECHO":            "debug.echo",
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	// First, load explicitly mapped variables
	for env, path := range l.mapping {
		if val, ok := l.lookup(env); ok {
			setByPath(config, path, l.parseValue(val))
		}
	}

	// Then, scan for additional prefixed variables not in mapping
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		// Skip if already mapped
		if _, ok := l.mapping[name]; ok {
			continue
		}

		// Convert HECTO_TERMINAL_MAX_READ_ERRORS to terminal.maxReadErrors
		setByPath(config, l.envToPath(name), l.parseValue(value))
	}

	return config, nil
}

// envToPath converts HECTO_TERMINAL_MAX_READ_ERRORS to terminal.maxReadErrors.
// The first part is the section; the rest form the camelCase setting name.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return strings.ToLower(name)
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}

	return strings.ToLower(parts[0]) + "." + setting
}

// parseValue attempts to parse the string value into an appropriate type.
// Digits always parse as integers, so "1" stays a count rather than a bool.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only with a decimal point to avoid misinterpreting ints
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	// Navigate/create intermediate maps
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
