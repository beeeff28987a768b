//go:build unix

package tela

import (
	"time"

	"golang.org/x/sys/unix"
)

// getTerminalSizeForReader returns the terminal dimensions for the
// EventReader. Falls back to 80x24 when the ioctl fails.
func getTerminalSizeForReader(fd int) (width, height int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// selectWithTimeout performs a select() call on the given fd.
// Returns (true, nil) if the fd is ready for reading, (false, nil) on
// timeout. A negative timeout blocks indefinitely.
func selectWithTimeout(fd int, timeout time.Duration) (ready bool, err error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	var tv *unix.Timeval
	if timeout >= 0 {
		tvVal := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &tvVal
	}

	n, err := unix.Select(fd+1, &readFds, nil, nil, tv)
	if err != nil {
		// EINTR is expected when signals arrive.
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}

	return n > 0, nil
}
