package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dshills/hecto/internal/input/key"
)

func TestDecodeByte(t *testing.T) {
	tests := []struct {
		b        byte
		wantKey  key.Key
		wantRune rune
		wantMod  key.Modifier
	}{
		{'q', key.KeyRune, 'q', key.ModNone},
		{'Q', key.KeyRune, 'Q', key.ModNone},
		{' ', key.KeyRune, ' ', key.ModNone},
		{'~', key.KeyRune, '~', key.ModNone},
		{0x11, key.KeyRune, 'q', key.ModCtrl},
		{0x01, key.KeyRune, 'a', key.ModCtrl},
		{0x1a, key.KeyRune, 'z', key.ModCtrl},
		{0x0a, key.KeyRune, 'j', key.ModCtrl},
		{0x00, key.KeyRune, ' ', key.ModCtrl},
		{0x1c, key.KeyRune, '\\', key.ModCtrl},
		{0x1f, key.KeyRune, '_', key.ModCtrl},
		{'\r', key.KeyEnter, 0, key.ModNone},
		{'\t', key.KeyTab, 0, key.ModNone},
		{0x1b, key.KeyEscape, 0, key.ModNone},
		{0x7f, key.KeyBackspace, 0, key.ModNone},
		{0x08, key.KeyBackspace, 0, key.ModNone},
		{0xe9, key.KeyRune, 0xe9, key.ModNone},
	}

	for _, tt := range tests {
		ev := DecodeByte(tt.b)
		if ev.Type != EventKey {
			t.Errorf("DecodeByte(%#x) type = %v, want key", tt.b, ev.Type)
		}
		if ev.Key.Key != tt.wantKey || ev.Key.Rune != tt.wantRune || ev.Key.Modifiers != tt.wantMod {
			t.Errorf("DecodeByte(%#x) = %v, want key=%v rune=%q mod=%v",
				tt.b, ev.Key, tt.wantKey, tt.wantRune, tt.wantMod)
		}
		if !bytes.Equal(ev.Bytes, []byte{tt.b}) {
			t.Errorf("DecodeByte(%#x) bytes = %v, want the input byte", tt.b, ev.Bytes)
		}
	}
}

func TestByteTerminalPollEventReadsOneBytePerEvent(t *testing.T) {
	bt := &ByteTerminal{in: strings.NewReader("ab\x11"), out: io.Discard, fd: -1}

	var got []string
	for {
		ev, err := bt.PollEvent()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("PollEvent() error = %v", err)
		}
		got = append(got, ev.Key.String())
	}

	want := []string{"a", "b", "C-q"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}

type flakyReader struct {
	errs []error
	data []byte
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		return 0, err
	}
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestByteTerminalSurfacesReadError(t *testing.T) {
	readErr := errors.New("device gone")
	bt := &ByteTerminal{in: &flakyReader{errs: []error{readErr}}, out: io.Discard, fd: -1}

	if _, err := bt.PollEvent(); !errors.Is(err, readErr) {
		t.Errorf("PollEvent() error = %v, want %v", err, readErr)
	}
}

func TestByteTerminalRefusesNonTerminal(t *testing.T) {
	bt := &ByteTerminal{in: strings.NewReader(""), out: io.Discard, fd: -1}

	if err := bt.EnableRawMode(); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("EnableRawMode() error = %v, want ErrNotTerminal", err)
	}
	if err := bt.DisableRawMode(); err != nil {
		t.Errorf("DisableRawMode() without raw mode error = %v, want nil", err)
	}
}

func TestByteTerminalOutput(t *testing.T) {
	var out bytes.Buffer
	bt := &ByteTerminal{in: strings.NewReader(""), out: &out, fd: -1}

	if err := bt.ClearScreen(); err != nil {
		t.Fatalf("ClearScreen() error = %v", err)
	}
	if err := bt.Write([]byte("Goodbye.\r\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "\x1b[2J\x1b[HGoodbye.\r\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
