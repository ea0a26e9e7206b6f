package loader

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeYAML parses a YAML document. yaml.v3 only reports positions in
// the message text ("yaml: line 3: ..."), so the line is recovered from it.
func decodeYAML(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		msg := strings.TrimPrefix(err.Error(), "yaml: ")
		return nil, &ParseError{Path: path, Line: yamlLine(msg), Message: msg, Err: err}
	}
	return config, nil
}

// yamlLine extracts N from the first "line N" in msg, or returns 0.
func yamlLine(msg string) int {
	_, rest, ok := strings.Cut(msg, "line ")
	if !ok {
		return 0
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return n
}
