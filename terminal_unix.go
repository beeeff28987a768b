//go:build !windows

package tela

import (
	"golang.org/x/term"
)

// rawModeState holds the terminal state needed to leave raw mode.
type rawModeState struct {
	fd    int
	state *term.State
}

// enableRawMode puts the terminal into raw mode and returns the prior
// state for restoration.
func enableRawMode(fd int) (*rawModeState, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &rawModeState{fd: fd, state: state}, nil
}

// disableRawMode restores the terminal mode saved by enableRawMode.
func disableRawMode(s *rawModeState) error {
	if s == nil || s.state == nil {
		return nil
	}
	return term.Restore(s.fd, s.state)
}

// getTerminalSize queries the terminal dimensions in cells.
func getTerminalSize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}
