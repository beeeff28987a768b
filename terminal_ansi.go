package tela

import (
	"fmt"
	"io"
	"os"
)

// ANSITerminal implements Terminal using ANSI escape sequences.
// It works with any terminal emulator that supports ANSI codes.
type ANSITerminal struct {
	out        io.Writer     // Output destination (usually os.Stdout)
	in         io.Reader     // Input source (usually os.Stdin)
	caps       Capabilities  // Terminal capabilities
	lastStyle  Style         // Last emitted style (for optimization)
	styleValid bool          // lastStyle reflects the terminal's actual state
	esc        *escBuilder   // Escape sequence builder
	inFd       uintptr       // File descriptor for input (needed for raw mode)
	outFd      uintptr       // File descriptor for output (needed for size query)
	rawState   *rawModeState // Platform-specific raw mode state
}

// NewANSITerminal creates a new ANSI terminal with auto-detected capabilities.
// The output writer is typically os.Stdout and the input reader os.Stdin.
func NewANSITerminal(out io.Writer, in io.Reader) (*ANSITerminal, error) {
	return NewANSITerminalWithCaps(out, in, DetectCapabilities()), nil
}

// NewANSITerminalWithCaps creates a new ANSI terminal with explicit capabilities.
// Use this when you want to override auto-detection.
func NewANSITerminalWithCaps(out io.Writer, in io.Reader, caps Capabilities) *ANSITerminal {
	t := &ANSITerminal{
		out:  out,
		in:   in,
		caps: caps,
		esc:  newEscBuilder(4096),
	}

	if f, ok := out.(*os.File); ok {
		t.outFd = f.Fd()
	}
	if f, ok := in.(*os.File); ok {
		t.inFd = f.Fd()
	}

	return t
}

// Size returns the terminal dimensions.
// Returns a default of 80x24 if the size cannot be determined.
func (t *ANSITerminal) Size() (width, height int) {
	w, h, err := getTerminalSize(int(t.outFd))
	if err != nil {
		return 80, 24
	}
	return w, h
}

// Flush writes the given cell changes to the terminal.
// Cursor moves are emitted only when the next cell isn't adjacent to
// the last written one, and style codes only when the style changes.
func (t *ANSITerminal) Flush(changes []CellChange) error {
	if len(changes) == 0 {
		return nil
	}

	t.esc.Reset()
	lastX, lastY := -1, -1

	for _, ch := range changes {
		// Continuation cells are the second column of a wide rune; the
		// primary cell already advanced the cursor over them.
		if ch.Cell.IsContinuation() {
			continue
		}

		if ch.Y != lastY || ch.X != lastX+1 {
			t.esc.MoveTo(ch.X, ch.Y)
		}

		if !t.styleValid {
			t.esc.SetStyle(ch.Cell.Style, t.caps)
			t.lastStyle = ch.Cell.Style
			t.styleValid = true
		} else if !ch.Cell.Style.Equal(t.lastStyle) {
			t.esc.StyleDiff(t.lastStyle, ch.Cell.Style, t.caps)
			t.lastStyle = ch.Cell.Style
		}

		if ch.Cell.Rune != 0 {
			t.esc.WriteRune(ch.Cell.Rune)
		} else {
			t.esc.WriteRune(' ')
		}

		lastX = ch.X
		if ch.Cell.Width > 1 {
			lastX = ch.X + ch.Cell.Width - 1
		}
		lastY = ch.Y
	}

	return t.write()
}

// write flushes the escape buffer to the output.
func (t *ANSITerminal) write() error {
	if _, err := t.out.Write(t.esc.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrTerminalIO, err)
	}
	return nil
}

// Clear clears the entire terminal screen.
func (t *ANSITerminal) Clear() {
	t.esc.Reset()
	t.esc.ResetStyle()
	t.esc.MoveTo(0, 0)
	t.esc.ClearScreen()
	t.esc.ClearScrollback() // helps leave a clean screen after resize
	t.esc.MoveTo(0, 0)
	t.write()
	t.lastStyle = NewStyle()
	t.styleValid = true
}

// SetCursor moves the cursor to the specified position (0-indexed).
func (t *ANSITerminal) SetCursor(x, y int) {
	t.esc.Reset()
	t.esc.MoveTo(x, y)
	t.write()
}

// HideCursor makes the cursor invisible.
func (t *ANSITerminal) HideCursor() {
	t.esc.Reset()
	t.esc.HideCursor()
	t.write()
}

// ShowCursor makes the cursor visible.
func (t *ANSITerminal) ShowCursor() {
	t.esc.Reset()
	t.esc.ShowCursor()
	t.write()
}

// EnterRawMode puts the terminal into raw mode.
func (t *ANSITerminal) EnterRawMode() error {
	state, err := enableRawMode(int(t.inFd))
	if err != nil {
		return fmt.Errorf("%w: enter raw mode: %v", ErrTerminalIO, err)
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the terminal to its previous mode.
func (t *ANSITerminal) ExitRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := disableRawMode(t.rawState)
	t.rawState = nil
	if err != nil {
		return fmt.Errorf("%w: exit raw mode: %v", ErrTerminalIO, err)
	}
	return nil
}

// EnterAltScreen switches to the alternate screen buffer.
func (t *ANSITerminal) EnterAltScreen() {
	if !t.caps.AltScreen {
		return
	}
	t.esc.Reset()
	t.esc.EnterAltScreen()
	t.write()
}

// ExitAltScreen switches back to the main screen buffer.
func (t *ANSITerminal) ExitAltScreen() {
	if !t.caps.AltScreen {
		return
	}
	t.esc.Reset()
	t.esc.ExitAltScreen()
	t.write()
}

// EnableMouse turns on mouse reporting.
func (t *ANSITerminal) EnableMouse() {
	if !t.caps.Mouse {
		return
	}
	t.esc.Reset()
	t.esc.EnableMouse()
	t.write()
}

// DisableMouse turns off mouse reporting.
func (t *ANSITerminal) DisableMouse() {
	if !t.caps.Mouse {
		return
	}
	t.esc.Reset()
	t.esc.DisableMouse()
	t.write()
}

// BeginSyncUpdate starts a synchronized update block.
// Output is buffered until EndSyncUpdate, then displayed atomically.
func (t *ANSITerminal) BeginSyncUpdate() {
	t.esc.Reset()
	t.esc.BeginSyncUpdate()
	t.write()
}

// EndSyncUpdate ends a synchronized update block.
func (t *ANSITerminal) EndSyncUpdate() {
	t.esc.Reset()
	t.esc.EndSyncUpdate()
	t.write()
}

// Caps returns the terminal's capabilities.
func (t *ANSITerminal) Caps() Capabilities {
	return t.caps
}

// SetCaps updates the terminal's capabilities.
// Useful after detecting capabilities at runtime.
func (t *ANSITerminal) SetCaps(caps Capabilities) {
	t.caps = caps
}

// Input returns the input reader for the event loop.
func (t *ANSITerminal) Input() io.Reader {
	return t.in
}

// InputFd returns the input file descriptor, or 0 when input isn't a file.
func (t *ANSITerminal) InputFd() uintptr {
	return t.inFd
}
