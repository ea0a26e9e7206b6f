package terminal

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpenClose(t *testing.T) {
	b := NewFakeBackend()

	s, err := Open(b)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !b.Raw() || !s.Active() {
		t.Fatal("expected raw mode after Open")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if got := b.Count("disable"); got != 1 {
		t.Errorf("disable called %d times, want 1", got)
	}
	if b.Raw() || s.Active() {
		t.Error("expected raw mode released after Close")
	}
}

func TestOpenTwiceFails(t *testing.T) {
	b := NewFakeBackend()

	s, err := Open(b)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	if _, err := Open(b); !errors.Is(err, ErrSessionActive) {
		t.Fatalf("second Open() error = %v, want ErrSessionActive", err)
	}
	if got := b.Count("enable"); got != 1 {
		t.Errorf("enable called %d times, want 1", got)
	}

	other := NewFakeBackend()
	s2, err := Open(other)
	if err != nil {
		t.Fatalf("Open() on independent backend error = %v", err)
	}
	s2.Close()
}

func TestOpenAfterCloseSucceeds(t *testing.T) {
	b := NewFakeBackend()
	for i := 0; i < 2; i++ {
		s, err := Open(b)
		if err != nil {
			t.Fatalf("Open() #%d error = %v", i, err)
		}
		s.Close()
	}
	if b.Count("enable") != 2 || b.Count("disable") != 2 {
		t.Errorf("calls = %v, want two enable/disable pairs", b.Calls())
	}
}

func TestOpenEnableFailure(t *testing.T) {
	b := NewFakeBackend()
	b.EnableErr = errors.New("ioctl failed")

	_, err := Open(b)
	var enableErr *EnableError
	if !errors.As(err, &enableErr) {
		t.Fatalf("Open() error = %v, want *EnableError", err)
	}
	if !errors.Is(err, b.EnableErr) {
		t.Error("EnableError should wrap the backend error")
	}
	if got := b.Count("disable"); got != 0 {
		t.Errorf("disable called %d times after failed enable, want 0", got)
	}

	// A failed enable must not leave the backend marked as owned.
	b.EnableErr = nil
	s, err := Open(b)
	if err != nil {
		t.Fatalf("Open() after failed enable error = %v", err)
	}
	s.Close()
}

func TestCloseRestoreFailureIsSticky(t *testing.T) {
	b := NewFakeBackend()
	b.DisableErr = errors.New("tcsetattr failed")

	s, err := Open(b)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	err = s.Close()
	var restoreErr *RestoreError
	if !errors.As(err, &restoreErr) {
		t.Fatalf("Close() error = %v, want *RestoreError", err)
	}
	if again := s.Close(); again != err {
		t.Errorf("second Close() = %v, want the first error", again)
	}
	if got := b.Count("disable"); got != 1 {
		t.Errorf("disable called %d times, want 1", got)
	}
}

func TestWithRawModeReleasesOnEveryPath(t *testing.T) {
	fnErr := errors.New("loop failed")

	tests := []struct {
		name    string
		fn      func(*Session) error
		wantErr error
	}{
		{"normal return", func(*Session) error { return nil }, nil},
		{"error return", func(*Session) error { return fnErr }, fnErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFakeBackend()
			err := WithRawMode(b, tt.fn)
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("WithRawMode() error = %v, want %v", err, tt.wantErr)
			}
			if b.Count("enable") != 1 || b.Count("disable") != 1 {
				t.Errorf("calls = %v, want one enable and one disable", b.Calls())
			}
		})
	}
}

func TestWithRawModeReleasesOnPanic(t *testing.T) {
	b := NewFakeBackend()

	func() {
		defer func() {
			r := recover()
			if r != "boom" {
				t.Errorf("recovered %v, want original panic value", r)
			}
		}()
		_ = WithRawMode(b, func(*Session) error {
			panic("boom")
		})
	}()

	if b.Count("disable") != 1 || b.Raw() {
		t.Errorf("calls = %v, want raw mode released before panic escapes", b.Calls())
	}
}

func TestWithRawModePanicWithRestoreFailure(t *testing.T) {
	b := NewFakeBackend()
	b.DisableErr = errors.New("restore failed")

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = WithRawMode(b, func(*Session) error {
			panic("boom")
		})
	}()

	err, ok := recovered.(error)
	if !ok {
		t.Fatalf("recovered %v, want an error carrying the restore failure", recovered)
	}
	var restoreErr *RestoreError
	if !errors.As(err, &restoreErr) {
		t.Errorf("panic value %v should carry *RestoreError", err)
	}
}

func TestWithRawModeJoinsRestoreError(t *testing.T) {
	b := NewFakeBackend()
	b.DisableErr = errors.New("restore failed")
	fnErr := fmt.Errorf("read: %w", ErrClosed)

	err := WithRawMode(b, func(*Session) error { return fnErr })

	if !errors.Is(err, ErrClosed) {
		t.Errorf("error %v should keep the loop error", err)
	}
	var restoreErr *RestoreError
	if !errors.As(err, &restoreErr) {
		t.Errorf("error %v should carry *RestoreError", err)
	}
}

func TestWithRawModeEnableFailureSkipsFn(t *testing.T) {
	b := NewFakeBackend()
	b.EnableErr = errors.New("not a tty")

	called := false
	err := WithRawMode(b, func(*Session) error {
		called = true
		return nil
	})

	if called {
		t.Error("fn must not run without raw mode")
	}
	var enableErr *EnableError
	if !errors.As(err, &enableErr) {
		t.Errorf("error = %v, want *EnableError", err)
	}
}
