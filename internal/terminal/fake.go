package terminal

import (
	"strings"
)

// FakeStep is one scripted PollEvent result.
type FakeStep struct {
	Event Event
	Err   error
	// Panic, when non-nil, makes PollEvent panic with this value.
	Panic any
}

// FakeBackend is a scripted backend for testing. It records every call
// in order and returns ErrClosed once the script is exhausted.
type FakeBackend struct {
	Steps []FakeStep

	EnableErr  error
	DisableErr error
	ClearErr   error

	calls  []string
	output strings.Builder
	raw    bool
}

// NewFakeBackend creates a fake that delivers the given steps in order.
func NewFakeBackend(steps ...FakeStep) *FakeBackend {
	return &FakeBackend{Steps: steps}
}

// Deliver returns a step delivering ev.
func Deliver(ev Event) FakeStep {
	return FakeStep{Event: ev}
}

// Fail returns a step whose read fails with err.
func Fail(err error) FakeStep {
	return FakeStep{Err: err}
}

func (b *FakeBackend) EnableRawMode() error {
	b.calls = append(b.calls, "enable")
	if b.EnableErr != nil {
		return b.EnableErr
	}
	b.raw = true
	return nil
}

func (b *FakeBackend) DisableRawMode() error {
	b.calls = append(b.calls, "disable")
	b.raw = false
	return b.DisableErr
}

func (b *FakeBackend) PollEvent() (Event, error) {
	b.calls = append(b.calls, "poll")
	if len(b.Steps) == 0 {
		return Event{}, ErrClosed
	}
	step := b.Steps[0]
	b.Steps = b.Steps[1:]
	if step.Panic != nil {
		panic(step.Panic)
	}
	return step.Event, step.Err
}

func (b *FakeBackend) ClearScreen() error {
	b.calls = append(b.calls, "clear")
	return b.ClearErr
}

func (b *FakeBackend) Write(p []byte) error {
	b.calls = append(b.calls, "write:"+string(p))
	b.output.Write(p)
	return nil
}

// Calls returns the recorded calls in order.
func (b *FakeBackend) Calls() []string {
	out := make([]string, len(b.calls))
	copy(out, b.calls)
	return out
}

// Count returns how many times the named call was made.
func (b *FakeBackend) Count(name string) int {
	n := 0
	for _, c := range b.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Output returns everything written so far.
func (b *FakeBackend) Output() string {
	return b.output.String()
}

// Raw reports whether raw mode is currently enabled.
func (b *FakeBackend) Raw() bool {
	return b.raw
}
