package tela

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// screenEmulator is an io.Writer that interprets the ANSI escape sequences
// ANSITerminal emits and maintains a visible screen grid. Feeding it the
// output of a diff flush lets tests verify that the emitted bytes really
// reproduce the back buffer, not just that some bytes were written.
type screenEmulator struct {
	width, height int
	screen        [][]rune // screen[row][col]
	cursorRow     int      // 0-indexed
	cursorCol     int      // 0-indexed
	cursorHidden  bool

	syncBegins int // BeginSyncUpdate count (DEC 2026 set)
	syncEnds   int // EndSyncUpdate count (DEC 2026 reset)
	written    int // total bytes received
}

// newScreenEmulator creates an emulator with the given dimensions.
// The screen is initialized with spaces.
func newScreenEmulator(width, height int) *screenEmulator {
	screen := make([][]rune, height)
	for i := range screen {
		screen[i] = make([]rune, width)
		for j := range screen[i] {
			screen[i][j] = ' '
		}
	}
	return &screenEmulator{
		width:  width,
		height: height,
		screen: screen,
	}
}

// Write processes raw bytes containing ANSI escape sequences.
// This is what makes the emulator useful for testing: it actually
// interprets the sequences instead of discarding them.
func (e *screenEmulator) Write(b []byte) (int, error) {
	e.written += len(b)
	s := string(b)
	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\033':
			if i+1 < len(s) && s[i+1] == '[' {
				i += 2 + e.parseCSI(s[i+2:])
			} else {
				i += 2
			}
		case s[i] == '\n':
			if e.cursorRow < e.height-1 {
				e.cursorRow++
			}
			i++
		case s[i] == '\r':
			e.cursorCol = 0
			i++
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			e.printRune(r)
			i += size
		}
	}
	return len(b), nil
}

// printRune writes a rune at the cursor and advances the cursor by the
// rune's display width, matching how a real terminal lays out wide runes.
func (e *screenEmulator) printRune(r rune) {
	if e.cursorRow < 0 || e.cursorRow >= e.height ||
		e.cursorCol < 0 || e.cursorCol >= e.width {
		return
	}
	e.screen[e.cursorRow][e.cursorCol] = r
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	if w == 2 && e.cursorCol+1 < e.width {
		e.screen[e.cursorRow][e.cursorCol+1] = 0
	}
	e.cursorCol += w
}

// parseCSI parses a CSI sequence starting after "\033[".
// Returns the number of bytes consumed from s.
func (e *screenEmulator) parseCSI(s string) int {
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch >= 0x40 && ch <= 0x7E {
			params := s[:i]
			switch ch {
			case 'H': // CUP
				e.cursorPosition(params)
			case 'J': // ED
				e.eraseDisplay(params)
			case 'm': // SGR: styles are not tracked by the emulator
			case 'h':
				e.setPrivateMode(params, true)
			case 'l':
				e.setPrivateMode(params, false)
			}
			return i + 1
		}
		i++
	}
	return i
}

// cursorPosition handles ESC[row;colH (1-indexed).
func (e *screenEmulator) cursorPosition(params string) {
	row, col := 1, 1
	if params != "" {
		parts := strings.Split(params, ";")
		if len(parts) >= 1 && parts[0] != "" {
			row, _ = strconv.Atoi(parts[0])
		}
		if len(parts) >= 2 && parts[1] != "" {
			col, _ = strconv.Atoi(parts[1])
		}
	}
	e.cursorRow = row - 1
	e.cursorCol = col - 1
}

// eraseDisplay handles ESC[nJ.
func (e *screenEmulator) eraseDisplay(params string) {
	n := 0
	if params != "" {
		n, _ = strconv.Atoi(params)
	}
	switch n {
	case 0:
		for c := e.cursorCol; c < e.width; c++ {
			e.screen[e.cursorRow][c] = ' '
		}
		for r := e.cursorRow + 1; r < e.height; r++ {
			for c := 0; c < e.width; c++ {
				e.screen[r][c] = ' '
			}
		}
	case 2:
		for r := 0; r < e.height; r++ {
			for c := 0; c < e.width; c++ {
				e.screen[r][c] = ' '
			}
		}
	case 3:
		// scrollback clear: nothing visible to do
	}
}

// setPrivateMode handles ESC[?nh and ESC[?nl.
func (e *screenEmulator) setPrivateMode(params string, on bool) {
	if !strings.HasPrefix(params, "?") {
		return
	}
	for _, p := range strings.Split(params[1:], ";") {
		n, _ := strconv.Atoi(p)
		switch n {
		case 25:
			e.cursorHidden = !on
		case 2026:
			if on {
				e.syncBegins++
			} else {
				e.syncEnds++
			}
		}
	}
}

// --- Test helper methods ---

// Row returns the content of a screen row as a trimmed string.
// Continuation columns of wide runes are skipped.
func (e *screenEmulator) Row(row int) string {
	if row < 0 || row >= e.height {
		return ""
	}
	var sb strings.Builder
	for _, r := range e.screen[row] {
		if r == 0 {
			continue
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// ScreenString returns the visible screen as rows joined by newlines,
// with trailing blank rows removed.
func (e *screenEmulator) ScreenString() string {
	lines := make([]string, e.height)
	for r := 0; r < e.height; r++ {
		lines[r] = e.Row(r)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// BytesWritten returns the total number of bytes received so far.
func (e *screenEmulator) BytesWritten() int {
	return e.written
}

// ResetBytesWritten zeroes the byte counter for between-frame assertions.
func (e *screenEmulator) ResetBytesWritten() {
	e.written = 0
}
