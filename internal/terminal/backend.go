// Package terminal owns the terminal driver: raw-mode toggling,
// blocking event reads and the unbuffered clear primitive.
//
// A Backend is the boundary to the terminal. Session brackets raw mode
// so that every enable is paired with exactly one disable.
package terminal

import (
	"errors"

	"github.com/dshills/hecto/internal/input/key"
)

// Terminal errors.
var (
	// ErrNotTerminal indicates the input is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrSessionActive indicates raw mode is already owned by a session.
	ErrSessionActive = errors.New("raw mode session already active")

	// ErrClosed indicates the backend can no longer deliver events.
	ErrClosed = errors.New("terminal closed")
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event is one decoded terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Bytes holds the raw input for byte-oriented backends, nil otherwise.
	Bytes []byte
}

// KeyEvent wraps a key.Event as a terminal event.
func KeyEvent(ev key.Event) Event {
	return Event{Type: EventKey, Key: ev}
}

// Backend is the terminal boundary used by the input layer.
type Backend interface {
	// EnableRawMode switches the terminal to raw input: no line
	// buffering, no echo, no output post-processing.
	EnableRawMode() error

	// DisableRawMode restores the mode captured by EnableRawMode.
	DisableRawMode() error

	// PollEvent blocks until the next event is available.
	PollEvent() (Event, error)

	// ClearScreen clears the whole display immediately.
	ClearScreen() error

	// Write writes text to the display as-is. In raw mode "\n" does not
	// return the carriage; callers terminate lines with "\r\n".
	Write(p []byte) error
}
