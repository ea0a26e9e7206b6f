package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// decodeTOML parses a TOML document. Syntax errors carry the line and
// column reported by the decoder.
func decodeTOML(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}
