package terminal

import "github.com/dshills/hecto/internal/input/key"

// ByteReports reports whether the byte backend can ever deliver ev.
// Every byte is one event, so ev is reachable exactly when some byte
// decodes to it.
func ByteReports(ev key.Event) bool {
	for b := 0; b <= 0xff; b++ {
		if DecodeByte(byte(b)).Key.Matches(ev) {
			return true
		}
	}
	return false
}

// TcellReports reports whether the tcell backend can deliver ev on a
// conventional terminal. The terminal folds Shift into the character it
// sends, Alt arrives as an ESC prefix, and Enter, Tab, Backspace and
// Escape are single control codes that carry no other modifier.
func TcellReports(ev key.Event) bool {
	base := ev
	base.Modifiers = ev.Modifiers.Without(key.ModAlt)

	switch ev.Key {
	case key.KeyNone:
		return false
	case key.KeyRune:
		return ByteReports(base) || (base.Modifiers == key.ModNone && base.IsPrintable())
	case key.KeyEnter, key.KeyTab, key.KeyBackTab, key.KeyBackspace, key.KeyEscape:
		return base.Modifiers == key.ModNone
	default:
		// Arrows, function and editing keys have xterm modifier encodings.
		return ev.Key.IsNamed()
	}
}
