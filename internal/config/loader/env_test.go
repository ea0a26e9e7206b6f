package loader

import (
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("HECTO_LOG_LEVEL", "debug")
	t.Setenv("HECTO_MAX_READ_ERRORS", "1")
	t.Setenv("HECTO_QUIT_KEY", "Ctrl+D")
	t.Setenv("HECTO_ECHO", "yes")

	loader := NewEnvLoader("HECTO_")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
	if val, ok := getByPath(config, "terminal.maxReadErrors"); !ok || val != int64(1) {
		t.Errorf("terminal.maxReadErrors = %v (%T), want 1", val, val)
	}
	if val, ok := getByPath(config, "keys.quit"); !ok || val != "Ctrl+D" {
		t.Errorf("keys.quit = %v, want 'Ctrl+D'", val)
	}
	if val, ok := getByPath(config, "debug.echo"); !ok || val != true {
		t.Errorf("debug.echo = %v, want true", val)
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("HECTO_SCREEN_FAREWELL_TEXT", "bye")

	config, err := NewEnvLoader("HECTO_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "screen.farewellText"); !ok || val != "bye" {
		t.Errorf("screen.farewellText = %v, want 'bye'", val)
	}
}

func TestEnvLoader_FakeEnvironment(t *testing.T) {
	env := map[string]string{
		"HECTO_BACKEND": "bytes",
		"OTHER_VAR":     "ignored",
	}
	loader := NewEnvLoader("HECTO_")
	loader.lookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	loader.environ = func() []string {
		return []string{"HECTO_BACKEND=bytes", "OTHER_VAR=ignored", "HECTO_BROKEN"}
	}

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(config) != 1 {
		t.Errorf("expected only the terminal section, got %v", config)
	}
	if val, _ := getByPath(config, "terminal.backend"); val != "bytes" {
		t.Errorf("terminal.backend = %v, want 'bytes'", val)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("HECTO_")

	tests := []struct {
		env      string
		expected string
	}{
		{"HECTO_TERMINAL_MAX_READ_ERRORS", "terminal.maxReadErrors"},
		{"HECTO_KEYS_QUIT", "keys.quit"},
		{"HECTO_SIMPLE", "simple"},
		{"HECTO_DEEP_NESTED_PATH", "deep.nestedPath"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	loader := NewEnvLoader("HECTO_")

	tests := []struct {
		input    string
		expected any
	}{
		// Booleans
		{"true", true},
		{"True", true},
		{"yes", true},
		{"on", true},
		{"false", false},
		{"FALSE", false},
		{"no", false},
		{"off", false},

		// Integers, including the ones that look like flags
		{"1", int64(1)},
		{"0", int64(0)},
		{"42", int64(42)},
		{"-10", int64(-10)},

		// Floats (only with decimal point)
		{"3.14", 3.14},

		// Strings (default)
		{"Ctrl+Q", "Ctrl+Q"},
		{"<C-q>", "<C-q>"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := loader.parseValue(tt.input); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)",
				tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestEnvLoader_CustomMapping(t *testing.T) {
	t.Setenv("MY_VAR", "test_value")

	config, _ := newEnvLoader("MY_", map[string]string{"MY_VAR": "my.setting"}).Load()
	if val, ok := getByPath(config, "my.setting"); !ok || val != "test_value" {
		t.Errorf("my.setting = %v, want 'test_value'", val)
	}
}

// Helper to get value by path
func getByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, part := range splitPath(path) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, exists := m[part]
		if !exists {
			return nil, false
		}
		current = val
	}
	return current, true
}

func splitPath(path string) []string {
	var result []string
	current := ""
	for _, c := range path {
		if c == '.' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else {
			current += string(c)
		}
	}
	if current != "" {
		result = append(result, current)
	}
	return result
}
