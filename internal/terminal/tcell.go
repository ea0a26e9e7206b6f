package terminal

import (
	"fmt"
	"os"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/hecto/internal/input/key"
)

// Terminal implements Backend using tcell. tcell decodes escape
// sequences into named keys and modifiers.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	console *console

	// fd and saved hold the tty state from before Init so that it can be
	// re-applied, and checked, after tcell has finished.
	fd     int
	saved  *term.State
	active bool
}

// NewTerminal creates a tcell backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, int(os.Stdin.Fd())), nil
}

func newTerminal(screen tcell.Screen, fd int) *Terminal {
	return &Terminal{
		screen:  screen,
		console: newConsole(screen),
		fd:      fd,
	}
}

func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return nil
	}

	if term.IsTerminal(t.fd) {
		st, err := term.GetState(t.fd)
		if err != nil {
			return fmt.Errorf("snapshot terminal state: %w", err)
		}
		t.saved = st
	}

	if err := t.screen.Init(); err != nil {
		t.saved = nil
		return err
	}
	t.active = true
	return nil
}

func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return nil
	}
	t.active = false
	t.screen.Fini()

	if t.saved == nil {
		return nil
	}
	saved := t.saved
	t.saved = nil
	if err := term.Restore(t.fd, saved); err != nil {
		return fmt.Errorf("reapply saved tty state: %w", err)
	}
	return nil
}

func (t *Terminal) PollEvent() (Event, error) {
	t.mu.Lock()
	active := t.active
	t.mu.Unlock()
	if !active {
		return Event{}, ErrClosed
	}

	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, ErrClosed
	}
	if e, ok := ev.(*tcell.EventError); ok {
		return Event{}, e
	}
	return convertEvent(ev), nil
}

func (t *Terminal) ClearScreen() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return ErrClosed
	}
	t.screen.Clear()
	t.console.home()
	t.screen.Sync()
	return nil
}

func (t *Terminal) Write(p []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return ErrClosed
	}
	t.console.write(p)
	t.screen.Show()
	return nil
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return KeyEvent(convertKeyEvent(e))

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// namedKeys maps tcell keys to named keys. Control codes that double as
// named keys (Ctrl+H, Ctrl+I, Ctrl+M, Ctrl+[) resolve to the named key.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyBackTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ctrlPunct maps the control codes above Ctrl+Z to their punctuation.
var ctrlPunct = map[tcell.Key]rune{
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
	tcell.KeyCtrlUnderscore: '_',
	tcell.KeyCtrlSpace:      ' ',
}

// convertKeyEvent maps a tcell key event onto key.Event. Ctrl+letter
// chords arrive as control codes and are reported as the lowercase
// letter with ModCtrl, so bindings can be written as "Ctrl+Q".
func convertKeyEvent(e *tcell.EventKey) key.Event {
	ev := key.Event{
		Modifiers: convertMod(e.Modifiers()),
		Kind:      key.KindPress,
		Timestamp: e.When(),
	}

	k := e.Key()
	if named, ok := namedKeys[k]; ok {
		ev.Key = named
		return ev
	}

	switch {
	case k == tcell.KeyRune:
		ev.Key = key.KeyRune
		ev.Rune = e.Rune()
		if ev.Modifiers.HasCtrl() {
			ev.Rune = unicode.ToLower(ev.Rune)
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		ev.Key = key.KeyRune
		ev.Rune = 'a' + rune(k-tcell.KeyCtrlA)
		ev.Modifiers = ev.Modifiers.With(key.ModCtrl)
	default:
		if r, ok := ctrlPunct[k]; ok {
			ev.Key = key.KeyRune
			ev.Rune = r
			ev.Modifiers = ev.Modifiers.With(key.ModCtrl)
		}
	}
	return ev
}

// convertMod converts tcell modifiers to key modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
