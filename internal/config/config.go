package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/hecto/internal/config/loader"
)

// Source names, in increasing priority.
const (
	SourceDefaults    = "defaults"
	SourceFile        = "file"
	SourceEnvironment = "environment"
	SourceOverrides   = "overrides"
)

// configFileNames are tried in order in the user config directory.
var configFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds the merged configuration.
type Config struct {
	mu sync.RWMutex

	// layers in increasing priority; overrides is always last
	layers    []layer
	overrides map[string]any
	merged    map[string]any

	fs            loader.FileSystem
	env           loader.Loader
	path          string
	userConfigDir string
	filePath      string

	// configErrors stores errors encountered during section access.
	configErrors map[string]error
}

type layer struct {
	name string
	data map[string]any
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath loads the given file instead of searching the user config
// directory. A missing file is an error.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithUserConfigDir sets the directory searched for config.toml or config.yaml.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithFileSystem sets the file system files are read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvLoader replaces the environment loader. Pass nil to ignore the environment.
func WithEnvLoader(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// New creates a Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		env:       loader.NewEnvLoader("HECTO_"),
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	c.layers = []layer{{name: SourceDefaults, data: defaultConfig()}}
	c.rebuild()
	return c
}

// Load reads the config file and the environment on top of the defaults.
// Overrides set before Load are kept.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	layers := []layer{{name: SourceDefaults, data: defaultConfig()}}

	data, path, err := c.loadFile()
	if err != nil {
		return err
	}
	if data != nil {
		layers = append(layers, layer{name: SourceFile, data: data})
	}

	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		if len(data) > 0 {
			layers = append(layers, layer{name: SourceEnvironment, data: data})
		}
	}

	c.layers = layers
	c.filePath = path
	c.configErrors = nil
	c.rebuild()
	return nil
}

// loadFile loads the explicit path, or the first config file found in the
// user config directory.
func (c *Config) loadFile() (map[string]any, string, error) {
	if c.path != "" {
		l, err := loader.NewFileLoader(c.fs, c.path)
		if err != nil {
			return nil, "", err
		}
		data, err := l.Load()
		if err != nil {
			return nil, "", err
		}
		if data == nil {
			return nil, "", fmt.Errorf("%w: %s", ErrFileNotFound, c.path)
		}
		return data, c.path, nil
	}

	for _, name := range configFileNames {
		path := filepath.Join(c.userConfigDir, name)
		l, err := loader.NewFileLoader(c.fs, path)
		if err != nil {
			return nil, "", err
		}
		data, err := l.Load()
		if err != nil {
			return nil, "", err
		}
		if data != nil {
			return data, path, nil
		}
	}
	return nil, "", nil
}

// rebuild recomputes the merged view. Caller must hold c.mu.
func (c *Config) rebuild() {
	merged := make(map[string]any)
	for _, l := range c.layers {
		merged = loader.DeepMerge(merged, loader.Clone(l.data))
	}
	c.merged = loader.DeepMerge(merged, loader.Clone(c.overrides))
}

// Get returns the merged value at a dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, &TypeError{Path: path, Expected: "int", Actual: "float64"}
		}
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// Set stores an override above every loaded source. Command line flags
// are applied this way.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := setPath(c.overrides, path, value); err != nil {
		return err
	}
	c.configErrors = nil
	c.rebuild()
	return nil
}

// Sources returns the names of the loaded layers in priority order.
func (c *Config) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.layers)+1)
	for _, l := range c.layers {
		names = append(names, l.name)
	}
	if len(c.overrides) > 0 {
		names = append(names, SourceOverrides)
	}
	return names
}

// FilePath returns the config file that was loaded, or "" if none.
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hecto")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hecto")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"keys": map[string]any{
			"quit": "Ctrl+Q",
		},
		"terminal": map[string]any{
			"backend":       BackendTcell,
			"maxReadErrors": 0,
		},
		"screen": map[string]any{
			"farewell": "Goodbye.",
		},
		"debug": map[string]any{
			"echo": false,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empty ones.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
