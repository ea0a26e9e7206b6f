package terminal

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/dshills/hecto/internal/input/key"
)

// csiClearHome clears the display and homes the cursor.
var csiClearHome = []byte("\x1b[2J\x1b[H")

// ByteTerminal implements Backend over the raw stdin byte stream with no
// escape decoding: every byte read is one event.
type ByteTerminal struct {
	mu    sync.Mutex
	in    io.Reader
	out   io.Writer
	fd    int
	state *term.State
	buf   [1]byte
}

// NewByteTerminal creates a byte backend on stdin/stdout.
func NewByteTerminal() *ByteTerminal {
	return &ByteTerminal{
		in:  os.Stdin,
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

func (t *ByteTerminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != nil {
		return nil
	}
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}

	old, err := term.MakeRaw(t.fd)
	if err != nil {
		return err
	}
	t.state = old
	return nil
}

func (t *ByteTerminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == nil {
		return nil
	}
	old := t.state
	t.state = nil
	return term.Restore(t.fd, old)
}

// PollEvent blocks until one byte has been read.
func (t *ByteTerminal) PollEvent() (Event, error) {
	for {
		n, err := t.in.Read(t.buf[:])
		if n == 1 {
			return DecodeByte(t.buf[0]), nil
		}
		if err != nil {
			retry, werr := readRetry(t.fd, err)
			if werr != nil {
				return Event{}, werr
			}
			if retry {
				continue
			}
			return Event{}, err
		}
	}
}

func (t *ByteTerminal) ClearScreen() error {
	_, err := t.out.Write(csiClearHome)
	return err
}

func (t *ByteTerminal) Write(p []byte) error {
	_, err := t.out.Write(p)
	return err
}

// DecodeByte turns one raw input byte into a key event. Named keys are
// recognised by their conventional control codes; other control codes
// become Ctrl chords. Bytes 0x80 and above pass through as runes.
func DecodeByte(b byte) Event {
	var ev key.Event
	switch {
	case b == '\r':
		ev = key.NewNamedEvent(key.KeyEnter, key.ModNone)
	case b == '\t':
		ev = key.NewNamedEvent(key.KeyTab, key.ModNone)
	case b == 0x1b:
		ev = key.NewNamedEvent(key.KeyEscape, key.ModNone)
	case b == 0x7f, b == 0x08:
		ev = key.NewNamedEvent(key.KeyBackspace, key.ModNone)
	case b == 0x00:
		ev = key.NewRuneEvent(' ', key.ModCtrl)
	case b <= 0x1a:
		ev = key.NewRuneEvent(rune('a'+b-1), key.ModCtrl)
	case b < 0x20:
		ev = key.NewRuneEvent(rune(b+0x40), key.ModCtrl)
	default:
		ev = key.NewRuneEvent(rune(b), key.ModNone)
	}
	return Event{Type: EventKey, Key: ev, Bytes: []byte{b}}
}
