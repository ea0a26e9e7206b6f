package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "q", "Q", "@"
//   - Named keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+Q", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-q>", "<A-f>", "<C-S-p>", "<CR>", "<Esc>"
//
// Characters combined with Ctrl are lowercased, matching what
// terminals report for control chords. An uppercase character carries
// no Shift: terminals fold Shift into the character itself.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), vimModifier)
	}

	// "+" alone is a character, not a separator
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseParts(strings.Split(spec, "+"), ModifierFromName)
	}

	return parseSingle(spec)
}

// vimModifier maps single-letter Vim modifier names.
func vimModifier(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c":
		return ModCtrl
	case "a":
		return ModAlt
	case "s":
		return ModShift
	case "m", "d":
		return ModMeta
	}
	return ModNone
}

// parseParts treats every part but the last as a modifier.
func parseParts(parts []string, lookup func(string) Modifier) (Event, error) {
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := lookup(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}
	return parseKeyWithModifiers(parts[len(parts)-1], mods)
}

// parseSingle parses a single character or key name.
func parseSingle(spec string) (Event, error) {
	runes := []rune(spec)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], ModNone), nil
	}
	return parseKeyWithModifiers(spec, ModNone)
}

// parseKeyWithModifiers parses a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "bar":
		return NewRuneEvent('|', mods), nil
	case "bslash":
		return NewRuneEvent('\\', mods), nil
	case "minus":
		return NewRuneEvent('-', mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewNamedEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}
