// Package screen controls what the input layer draws: a clear on start
// and a clear plus farewell when the session ends.
package screen

import (
	"fmt"
	"strings"

	"github.com/dshills/hecto/internal/session"
)

// DefaultFarewell is the line printed when a session ends.
const DefaultFarewell = "Goodbye."

// crlf terminates every line. Raw mode disables the tty's "\n" to
// "\r\n" translation, so a bare "\n" would staircase.
const crlf = "\r\n"

// Output is the part of the terminal backend the controller draws on.
type Output interface {
	ClearScreen() error
	Write(p []byte) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithFarewell sets the farewell line.
func WithFarewell(text string) Option {
	return func(c *Controller) {
		c.farewell = text
	}
}

// Controller draws on an Output.
type Controller struct {
	out      Output
	farewell string
	done     bool
}

// New creates a controller writing to out.
func New(out Output, opts ...Option) *Controller {
	c := &Controller{out: out, farewell: DefaultFarewell}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearScreen clears the display immediately.
func (c *Controller) ClearScreen() error {
	return c.out.ClearScreen()
}

// ShowFarewell prints the farewell line.
func (c *Controller) ShowFarewell() error {
	return c.Println("%s", c.farewell)
}

// Println prints one formatted line terminated with "\r\n". Embedded
// newlines are converted as well.
func (c *Controller) Println(format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	line = strings.ReplaceAll(line, "\r\n", "\n")
	line = strings.ReplaceAll(line, "\n", crlf)
	return c.out.Write([]byte(line + crlf))
}

// Refresh is called once per loop iteration. While Running it draws
// nothing; on Quitting it clears and prints the farewell, once.
func (c *Controller) Refresh(state session.State) error {
	if state != session.Quitting || c.done {
		return nil
	}
	if err := c.ClearScreen(); err != nil {
		return fmt.Errorf("clear before farewell: %w", err)
	}
	if err := c.ShowFarewell(); err != nil {
		return fmt.Errorf("farewell: %w", err)
	}
	c.done = true
	return nil
}
