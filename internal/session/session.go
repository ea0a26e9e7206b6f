// Package session holds the editor session state and the transition
// rule that decides when the session ends.
//
// The Machine is owned by the main loop and is not safe for concurrent
// use; the loop is single-threaded by construction.
package session

import (
	"fmt"

	"github.com/dshills/hecto/internal/input/key"
	"github.com/dshills/hecto/internal/terminal"
)

// DefaultQuitKey is the binding that ends a session.
const DefaultQuitKey = "Ctrl+Q"

// State is the session state.
type State int

const (
	// Running is the initial state.
	Running State = iota
	// Quitting is terminal: the loop stops before reading another event.
	Quitting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Quitting:
		return "Quitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Machine applies the quit transition to incoming events.
type Machine struct {
	state State
	quit  key.Event
}

// New creates a machine in the Running state that quits on the given binding.
func New(quit key.Event) *Machine {
	return &Machine{state: Running, quit: quit}
}

// NewDefault creates a machine bound to DefaultQuitKey.
func NewDefault() *Machine {
	return New(key.MustParse(DefaultQuitKey))
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// ShouldQuit reports whether the session has reached Quitting.
func (m *Machine) ShouldQuit() bool {
	return m.state == Quitting
}

// QuitBinding returns the binding that ends the session.
func (m *Machine) QuitBinding() key.Event {
	return m.quit
}

// Evaluate applies one event and reports whether the state changed.
// Only a key event matching the quit binding, with exactly its
// modifiers, moves Running to Quitting. Every other event is a no-op,
// and nothing is evaluated once Quitting.
func (m *Machine) Evaluate(ev terminal.Event) bool {
	if m.state == Quitting || ev.Type != terminal.EventKey {
		return false
	}
	if !ev.Key.Matches(m.quit) {
		return false
	}
	m.state = Quitting
	return true
}
