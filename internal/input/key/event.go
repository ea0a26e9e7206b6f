package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Kind distinguishes presses from auto-repeat and release reports.
// Most terminals only report presses.
type Kind uint8

const (
	// KindPress is a key going down.
	KindPress Kind = iota
	// KindRepeat is an auto-repeat while held.
	KindRepeat
	// KindRelease is a key coming up.
	KindRelease
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPress:
		return "Press"
	case KindRepeat:
		return "Repeat"
	case KindRelease:
		return "Release"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// State carries extra flags some backends attach to a keystroke.
// It is opaque to the input layer and preserved as reported.
type State uint8

const (
	// StateNone indicates no extra state.
	StateNone State = 0
	// StateKeypad marks a key from the numeric keypad.
	StateKeypad State = 1 << iota
	// StateCapsLock marks Caps Lock as active.
	StateCapsLock
	// StateNumLock marks Num Lock as active.
	StateNumLock
)

// String returns a representation like "Keypad|CapsLock", or "None".
func (s State) String() string {
	if s == StateNone {
		return "None"
	}
	var parts []string
	if s&StateKeypad != 0 {
		parts = append(parts, "Keypad")
	}
	if s&StateCapsLock != 0 {
		parts = append(parts, "CapsLock")
	}
	if s&StateNumLock != 0 {
		parts = append(parts, "NumLock")
	}
	if rest := s &^ (StateKeypad | StateCapsLock | StateNumLock); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// Event is an immutable snapshot of one keystroke.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Kind is press, repeat or release.
	Kind Kind

	// State is backend-specific and passed through untouched.
	State State

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a press event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Kind:      KindPress,
		Timestamp: time.Now(),
	}
}

// NewNamedEvent creates a press event for a named key.
func NewNamedEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Kind:      KindPress,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPrintable returns true if this is a printable character
// with no modifier other than Shift.
func (e Event) IsPrintable() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && e.Modifiers.Without(ModShift) == ModNone
}

// Matches reports whether e triggers the binding b.
// Key, Rune and Modifiers must be equal; the modifier comparison is exact,
// so Ctrl+Shift+Q does not match a Ctrl+Q binding. Kind and State are ignored.
func (e Event) Matches(b Event) bool {
	return e.Key == b.Key &&
		e.Rune == b.Rune &&
		e.Modifiers == b.Modifiers
}

// Code returns the key code rendering, e.g. "Char('q')" or "Enter".
func (e Event) Code() string {
	if e.Key == KeyRune {
		return fmt.Sprintf("Char(%q)", e.Rune)
	}
	return e.Key.String()
}

// Describe returns the one-line diagnostic used when echoing events.
func (e Event) Describe() string {
	return fmt.Sprintf("Code: %s Modifiers: %s Kind: %s State: %s",
		e.Code(), e.Modifiers, e.Kind, e.State)
}

// String returns a canonical representation like "C-q", "Enter" or "A-S-Up".
func (e Event) String() string {
	parts := strings.Split(e.Modifiers.ShortString(), "-")
	if parts[0] == "" {
		parts = parts[:0]
	}

	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(e.Rune)
	default:
		name = e.Key.String()
	}
	return strings.Join(append(parts, name), "-")
}
