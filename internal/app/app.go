// Package app runs the editor's main loop: it takes the terminal into
// raw mode, reads one event at a time, applies the quit transition and
// refreshes the screen until the session ends, then hands the terminal
// back on every exit path.
package app

import (
	"errors"
	"io"
	"runtime/debug"
	"sync/atomic"

	"github.com/dshills/hecto/internal/input/key"
	"github.com/dshills/hecto/internal/screen"
	"github.com/dshills/hecto/internal/session"
	"github.com/dshills/hecto/internal/terminal"
)

// Application owns one terminal backend and the loop that drives it.
type Application struct {
	backend terminal.Backend
	machine *session.Machine
	screen  *screen.Controller
	logger  *Logger
	stats   *Stats

	// State
	running atomic.Bool

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// QuitKey ends the session. The zero value selects session.DefaultQuitKey.
	QuitKey key.Event

	// Farewell is printed when the session ends. Empty selects screen.DefaultFarewell.
	Farewell string

	// Echo prints a diagnostic line for every event read.
	Echo bool

	// MaxReadErrors aborts the loop after this many consecutive read
	// failures. Zero or negative means never.
	MaxReadErrors int

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger
}

// New creates an Application driving the given backend.
func New(b terminal.Backend, opts Options) (*Application, error) {
	if b == nil {
		return nil, ErrNoBackend
	}

	machine := session.NewDefault()
	if opts.QuitKey.Key != key.KeyNone {
		machine = session.New(opts.QuitKey)
	}

	var screenOpts []screen.Option
	if opts.Farewell != "" {
		screenOpts = append(screenOpts, screen.WithFarewell(opts.Farewell))
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(LoggerConfig{})
	}

	app := &Application{
		backend: b,
		machine: machine,
		screen:  screen.New(b, screenOpts...),
		logger:  logger,
		stats:   NewStats(),
		opts:    opts,
	}
	return app, nil
}

// Run takes the terminal into raw mode, clears the screen and runs the
// event loop until the quit key is read. Raw mode is released on every
// exit path, including a panic inside the loop, which is returned as a
// *RecoveredPanicError after the terminal has been restored.
//
// A failure to restore the terminal is reported as a *terminal.RestoreError
// in the returned error chain, joined with any loop error.
func (app *Application) Run() (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	log := app.logger.WithComponent("app")
	app.stats.Start()
	defer func() {
		app.stats.Stop()
		snap := app.stats.Snapshot()
		log.Info("session ended after %s: %d events, %d keys, %d read errors",
			snap.Uptime, snap.Events, snap.KeyEvents, snap.ReadErrors)
	}()

	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
			log.Error("recovered panic: %v", r)
		}
	}()

	log.Info("entering raw mode, quit with %s", app.machine.QuitBinding())
	err = terminal.WithRawMode(app.backend, func(*terminal.Session) error {
		if err := app.screen.ClearScreen(); err != nil {
			return NewComponentError("screen", "clear", err)
		}
		return app.eventLoop()
	})

	var enableErr *terminal.EnableError
	if errors.As(err, &enableErr) {
		return &InitError{Component: "terminal", Err: err}
	}
	if err != nil {
		log.Error("run: %v", err)
	}
	return err
}

// eventLoop reads and evaluates events until the machine is quitting.
// The quit check happens before every read, so no read is issued once
// the quit key has been seen.
func (app *Application) eventLoop() error {
	log := app.logger.WithComponent("loop")
	failures := 0

	for !app.machine.ShouldQuit() {
		ev, err := app.backend.PollEvent()
		if err != nil {
			app.stats.RecordReadError()
			if isFatalReadError(err) {
				return NewComponentError("terminal", "read", err)
			}

			failures++
			log.Warn("read event: %v", err)
			if perr := app.screen.Println("Error: %v", err); perr != nil {
				return NewComponentError("screen", "report read error", perr)
			}
			if app.opts.MaxReadErrors > 0 && failures >= app.opts.MaxReadErrors {
				return NewComponentError("terminal", "read", errors.Join(ErrTooManyReadErrors, err))
			}
			continue
		}
		failures = 0
		app.stats.RecordEvent(ev)

		if app.opts.Echo {
			if err := app.echo(ev); err != nil {
				return NewComponentError("screen", "echo", err)
			}
		}

		if app.machine.Evaluate(ev) {
			log.Debug("quit key %s read", ev.Key)
		}

		if err := app.screen.Refresh(app.machine.State()); err != nil {
			return NewComponentError("screen", "refresh", err)
		}
	}

	return nil
}

// echo prints one diagnostic line per raw byte when the backend reports
// bytes, and one line per key event otherwise.
func (app *Application) echo(ev terminal.Event) error {
	if len(ev.Bytes) > 0 {
		for _, b := range ev.Bytes {
			if err := app.screen.Println("%s", key.DescribeByte(b)); err != nil {
				return err
			}
		}
		return nil
	}

	switch ev.Type {
	case terminal.EventKey:
		return app.screen.Println("%s", ev.Key.Describe())
	case terminal.EventResize:
		return app.screen.Println("Resize: %dx%d", ev.Width, ev.Height)
	default:
		return nil
	}
}

// isFatalReadError reports whether the event source can never deliver
// another event.
func isFatalReadError(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, terminal.ErrClosed)
}
