//go:build unix

package terminal

import (
	"errors"

	"golang.org/x/sys/unix"
)

// readRetry reports whether a failed read on fd should be repeated.
// EINTR is retried at once. EAGAIN means the descriptor is non-blocking,
// so retry waits in poll(2) until input arrives rather than spinning.
func readRetry(fd int, err error) (bool, error) {
	switch {
	case errors.Is(err, unix.EINTR):
		return true, nil
	case errors.Is(err, unix.EAGAIN):
		return true, waitReadable(fd)
	default:
		return false, nil
	}
}

// waitReadable blocks until fd has input, hangs up or fails.
func waitReadable(fd int) error {
	if fd < 0 {
		return nil
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		_, err := unix.Poll(fds, -1)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return err
	}
}
