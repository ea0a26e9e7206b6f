// Package loader reads configuration sources into plain maps.
//
// Files are parsed as TOML or YAML depending on their extension, and
// environment variables are mapped onto dotted setting paths. Callers
// merge the resulting maps with DeepMerge, later sources winning.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a config file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader is the interface for configuration sources.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is the file access a File loader needs. Tests substitute
// an in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// decodeFunc turns file contents into a configuration map. The path
// is only used in error messages.
type decodeFunc func(path string, data []byte) (map[string]any, error)

// decoders maps lowercase file extensions to their decoder.
var decoders = map[string]decodeFunc{
	".toml": decodeTOML,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
}

// File loads one configuration file.
type File struct {
	fs     FileSystem
	path   string
	decode decodeFunc
}

// NewFileLoader returns a loader for path, decoding it according to its
// extension. Unknown extensions fail with ErrUnsupportedFormat.
func NewFileLoader(fsys FileSystem, path string) (*File, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return &File{fs: fsys, path: path, decode: decode}, nil
}

// Load reads and decodes the file. An empty file yields an empty map.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fs.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}

	config, err := f.decode(f.path, data)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
