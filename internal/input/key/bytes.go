package key

import "fmt"

// Class is the coarse classification of a raw input byte.
type Class uint8

const (
	// ClassPrintable is a byte that renders as a character.
	ClassPrintable Class = iota
	// ClassControl is a non-printable byte, typically from Ctrl chords
	// or keys like Enter and Backspace.
	ClassControl
)

// String returns the class name.
func (c Class) String() string {
	if c == ClassControl {
		return "control"
	}
	return "printable"
}

// ClassifyByte classifies b purely by its value.
// 0x00-0x1F, 0x7F and the C1 range 0x80-0x9F are control; everything
// else is printable.
func ClassifyByte(b byte) Class {
	switch {
	case b < 0x20, b == 0x7f:
		return ClassControl
	case b >= 0x80 && b <= 0x9f:
		return ClassControl
	default:
		return ClassPrintable
	}
}

// DescribeByte renders the diagnostic line for one input byte.
// Control bytes omit the character rendering.
func DescribeByte(b byte) string {
	if ClassifyByte(b) == ClassControl {
		return fmt.Sprintf("Binary: %08b ASCII: %03d", b, b)
	}
	return fmt.Sprintf("Binary: %08b ASCII: %03d Character: %q", b, b, rune(b))
}
