package key

import (
	"strings"
	"testing"
)

func TestClassifyByteASCII(t *testing.T) {
	for b := 0; b <= 127; b++ {
		want := ClassPrintable
		if b <= 31 || b == 127 {
			want = ClassControl
		}
		if got := ClassifyByte(byte(b)); got != want {
			t.Errorf("ClassifyByte(%d) = %v, want %v", b, got, want)
		}
	}
}

func TestClassifyByteHighRange(t *testing.T) {
	if got := ClassifyByte(0x85); got != ClassControl {
		t.Errorf("ClassifyByte(0x85) = %v, want control", got)
	}
	if got := ClassifyByte(0xe9); got != ClassPrintable {
		t.Errorf("ClassifyByte(0xe9) = %v, want printable", got)
	}
}

func TestDescribeByte(t *testing.T) {
	tests := []struct {
		b    byte
		want string
	}{
		{'q', "Binary: 01110001 ASCII: 113 Character: 'q'"},
		{' ', "Binary: 00100000 ASCII: 032 Character: ' '"},
		{0x11, "Binary: 00010001 ASCII: 017"},
		{0x7f, "Binary: 01111111 ASCII: 127"},
	}

	for _, tt := range tests {
		if got := DescribeByte(tt.b); got != tt.want {
			t.Errorf("DescribeByte(%d) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestDescribeByteOmitsCharacterForControl(t *testing.T) {
	for b := 0; b <= 127; b++ {
		got := DescribeByte(byte(b))
		hasChar := strings.Contains(got, "Character:")
		if ClassifyByte(byte(b)) == ClassControl && hasChar {
			t.Errorf("DescribeByte(%d) = %q, control byte should omit character", b, got)
		}
		if ClassifyByte(byte(b)) == ClassPrintable && !hasChar {
			t.Errorf("DescribeByte(%d) = %q, printable byte should include character", b, got)
		}
	}
}
