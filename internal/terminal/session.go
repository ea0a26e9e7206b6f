package terminal

import (
	"errors"
	"fmt"
	"sync"
)

// EnableError reports a failure to enter raw mode.
type EnableError struct {
	Err error
}

func (e *EnableError) Error() string {
	return "enable raw mode: " + e.Err.Error()
}

func (e *EnableError) Unwrap() error {
	return e.Err
}

// RestoreError reports a failure to leave raw mode. The user's terminal
// may be left unusable, so it must never be discarded.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return "restore terminal mode: " + e.Err.Error()
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// owners tracks which backends currently have an open session.
var owners = struct {
	sync.Mutex
	m map[Backend]*Session
}{m: make(map[Backend]*Session)}

// Session is ownership of raw mode on one backend.
type Session struct {
	backend Backend
	closed  bool
	err     error
}

// Open enables raw mode on b and returns the owning session.
// The caller must Close it; prefer WithRawMode which does so on every path.
func Open(b Backend) (*Session, error) {
	owners.Lock()
	defer owners.Unlock()

	if _, ok := owners.m[b]; ok {
		return nil, ErrSessionActive
	}
	if err := b.EnableRawMode(); err != nil {
		return nil, &EnableError{Err: err}
	}

	s := &Session{backend: b}
	owners.m[b] = s
	return s, nil
}

// Backend returns the backend this session owns.
func (s *Session) Backend() Backend {
	return s.backend
}

// Active reports whether raw mode is still held.
func (s *Session) Active() bool {
	owners.Lock()
	defer owners.Unlock()
	return !s.closed
}

// Close disables raw mode. Only the first call reaches the backend;
// later calls return the first result.
func (s *Session) Close() error {
	owners.Lock()
	defer owners.Unlock()

	if s.closed {
		return s.err
	}
	s.closed = true
	delete(owners.m, s.backend)

	if err := s.backend.DisableRawMode(); err != nil {
		s.err = &RestoreError{Err: err}
	}
	return s.err
}

// WithRawMode runs fn with raw mode enabled and always disables it
// afterwards, whether fn returns normally, returns an error or panics.
// A panic is re-raised once the terminal has been released. A restore
// failure is joined with fn's error.
func WithRawMode(b Backend, fn func(*Session) error) (err error) {
	s, err := Open(b)
	if err != nil {
		return err
	}

	defer func() {
		r := recover()
		cerr := s.Close()
		if r != nil {
			if cerr != nil {
				panic(errors.Join(fmt.Errorf("panic: %v", r), cerr))
			}
			panic(r)
		}
		switch {
		case cerr == nil:
		case err == nil:
			err = cerr
		default:
			err = errors.Join(err, cerr)
		}
	}()

	return fn(s)
}
