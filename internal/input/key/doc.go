// Package key provides the key event model for the input layer.
//
// This package defines the value types produced by a terminal backend
// for every keystroke:
//
//   - Key: a named key (Enter, arrows, F-keys) or KeyRune for characters
//   - Modifier: bitmask of Ctrl, Alt, Shift and Meta
//   - Kind: press, repeat or release
//   - State: backend-specific flags passed through untouched
//   - Event: one keystroke combining all of the above
//
// # Modifier Matching
//
// Bindings match on exact modifier equality. A binding for Ctrl+Q does
// not match Ctrl+Shift+Q; use Modifier.Has for chord-tolerant checks.
//
// # Key Specifications
//
// Bindings can be written as "Ctrl+Q", "<C-q>", "Enter" or a single
// character and parsed with Parse.
//
// # Raw Bytes
//
// ClassifyByte and DescribeByte cover the byte-oriented input path used
// before any escape decoding takes place.
package key
