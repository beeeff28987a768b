package tela

import "strings"

// MockTerminal is an in-memory Terminal for testing. It applies flushed
// cell changes to an internal grid and records mode transitions so
// tests can assert on terminal state.
type MockTerminal struct {
	width, height int
	cells         []Cell
	cursorX       int
	cursorY       int
	cursorHidden  bool
	inRawMode     bool
	inAltScreen   bool
	mouseEnabled  bool
	inSyncUpdate  bool
	caps          Capabilities

	flushCount     int
	flushErr       error
	syncBeginCount int
	syncEndCount   int
}

var _ Terminal = (*MockTerminal)(nil)

// NewMockTerminal creates a mock terminal with the given dimensions.
func NewMockTerminal(width, height int) *MockTerminal {
	cells := make([]Cell, width*height)
	blank := EmptyCell(NewStyle())
	for i := range cells {
		cells[i] = blank
	}

	return &MockTerminal{
		width:  width,
		height: height,
		cells:  cells,
		caps: Capabilities{
			Colors:     Color256,
			Unicode:    true,
			TrueColor:  true,
			AltScreen:  true,
			Mouse:      true,
			SyncUpdate: true,
		},
	}
}

// Size returns the terminal dimensions.
func (m *MockTerminal) Size() (width, height int) {
	return m.width, m.height
}

// Flush applies the given cell changes to the mock terminal's grid.
func (m *MockTerminal) Flush(changes []CellChange) error {
	if m.flushErr != nil {
		return m.flushErr
	}
	m.flushCount++
	for _, ch := range changes {
		if ch.X >= 0 && ch.X < m.width && ch.Y >= 0 && ch.Y < m.height {
			m.cells[ch.Y*m.width+ch.X] = ch.Cell
		}
	}
	return nil
}

// FailFlush makes subsequent Flush calls return the given error.
func (m *MockTerminal) FailFlush(err error) {
	m.flushErr = err
}

// FlushCount returns how many successful flushes occurred.
func (m *MockTerminal) FlushCount() int {
	return m.flushCount
}

// Clear clears the entire terminal to spaces with default style.
func (m *MockTerminal) Clear() {
	blank := EmptyCell(NewStyle())
	for i := range m.cells {
		m.cells[i] = blank
	}
	m.cursorX = 0
	m.cursorY = 0
}

// SetCursor moves the cursor to the specified position.
func (m *MockTerminal) SetCursor(x, y int) {
	m.cursorX = x
	m.cursorY = y
}

// HideCursor makes the cursor invisible.
func (m *MockTerminal) HideCursor() {
	m.cursorHidden = true
}

// ShowCursor makes the cursor visible.
func (m *MockTerminal) ShowCursor() {
	m.cursorHidden = false
}

// EnterRawMode simulates entering raw mode.
func (m *MockTerminal) EnterRawMode() error {
	m.inRawMode = true
	return nil
}

// ExitRawMode simulates exiting raw mode.
func (m *MockTerminal) ExitRawMode() error {
	m.inRawMode = false
	return nil
}

// EnterAltScreen simulates entering the alternate screen buffer.
func (m *MockTerminal) EnterAltScreen() {
	m.inAltScreen = true
}

// ExitAltScreen simulates exiting the alternate screen buffer.
func (m *MockTerminal) ExitAltScreen() {
	m.inAltScreen = false
}

// EnableMouse simulates enabling mouse event reporting.
func (m *MockTerminal) EnableMouse() {
	m.mouseEnabled = true
}

// DisableMouse simulates disabling mouse event reporting.
func (m *MockTerminal) DisableMouse() {
	m.mouseEnabled = false
}

// BeginSyncUpdate records the start of a synchronized update block.
func (m *MockTerminal) BeginSyncUpdate() {
	m.inSyncUpdate = true
	m.syncBeginCount++
}

// EndSyncUpdate records the end of a synchronized update block.
func (m *MockTerminal) EndSyncUpdate() {
	m.inSyncUpdate = false
	m.syncEndCount++
}

// SyncUpdateCounts returns how many sync blocks were opened and closed.
func (m *MockTerminal) SyncUpdateCounts() (begins, ends int) {
	return m.syncBeginCount, m.syncEndCount
}

// Caps returns the terminal's capabilities.
func (m *MockTerminal) Caps() Capabilities {
	return m.caps
}

// SetCaps sets the terminal's capabilities for testing.
func (m *MockTerminal) SetCaps(caps Capabilities) {
	m.caps = caps
}

// CellAt returns the cell at the given position.
// Returns an empty Cell if out of bounds.
func (m *MockTerminal) CellAt(x, y int) Cell {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Cell{}
	}
	return m.cells[y*m.width+x]
}

// String renders the terminal grid to a string for snapshot testing.
// Each row is separated by a newline; continuation cells are skipped.
func (m *MockTerminal) String() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			cell := m.cells[y*m.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		if y < m.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the grid content with trailing spaces removed
// from each line.
func (m *MockTerminal) StringTrimmed() string {
	var sb strings.Builder
	for _, line := range strings.Split(m.String(), "\n") {
		if sb.Len() > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(strings.TrimRight(line, " "))
	}
	return sb.String()
}

// Cursor returns the current cursor position.
func (m *MockTerminal) Cursor() (x, y int) {
	return m.cursorX, m.cursorY
}

// IsCursorHidden returns whether the cursor is hidden.
func (m *MockTerminal) IsCursorHidden() bool {
	return m.cursorHidden
}

// IsInRawMode returns whether the terminal is in raw mode.
func (m *MockTerminal) IsInRawMode() bool {
	return m.inRawMode
}

// IsInAltScreen returns whether the alternate screen is active.
func (m *MockTerminal) IsInAltScreen() bool {
	return m.inAltScreen
}

// IsMouseEnabled returns whether mouse event reporting is enabled.
func (m *MockTerminal) IsMouseEnabled() bool {
	return m.mouseEnabled
}

// Resize changes the terminal dimensions, preserving content where
// possible.
func (m *MockTerminal) Resize(width, height int) {
	newCells := make([]Cell, width*height)
	blank := EmptyCell(NewStyle())
	for i := range newCells {
		newCells[i] = blank
	}

	copyWidth := min(width, m.width)
	copyHeight := min(height, m.height)
	for y := 0; y < copyHeight; y++ {
		for x := 0; x < copyWidth; x++ {
			newCells[y*width+x] = m.cells[y*m.width+x]
		}
	}

	m.width = width
	m.height = height
	m.cells = newCells
}
