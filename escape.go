package tela

import (
	"strconv"
	"unicode/utf8"
)

// escBuilder efficiently builds ANSI escape sequences.
// It uses a pre-allocated buffer to minimize allocations.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt writes an integer to the buffer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// privateMode writes a DEC private mode set (h) or reset (l) sequence.
func (e *escBuilder) privateMode(mode int, on bool) {
	e.writeCSI()
	e.buf = append(e.buf, '?')
	e.writeInt(mode)
	if on {
		e.buf = append(e.buf, 'h')
	} else {
		e.buf = append(e.buf, 'l')
	}
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// ClearScrollback clears the scrollback buffer (ESC[3J).
// This helps ensure a clean screen after terminal resize.
func (e *escBuilder) ClearScrollback() {
	e.writeCSI()
	e.buf = append(e.buf, '3', 'J')
}

// ClearLine clears the entire current line.
func (e *escBuilder) ClearLine() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'K')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.privateMode(25, false)
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.privateMode(25, true)
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.privateMode(1049, true)
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.privateMode(1049, false)
}

// BeginSyncUpdate starts a synchronized update block (mode 2026).
// The terminal buffers all output until EndSyncUpdate, then displays it
// atomically. Terminals without support ignore the sequence.
func (e *escBuilder) BeginSyncUpdate() {
	e.privateMode(2026, true)
}

// EndSyncUpdate ends a synchronized update block.
func (e *escBuilder) EndSyncUpdate() {
	e.privateMode(2026, false)
}

// EnableMouse enables mouse reporting: button tracking (1000), drag
// motion while a button is held (1002), and SGR extended coordinates
// (1006) which work beyond column 223.
func (e *escBuilder) EnableMouse() {
	e.privateMode(1000, true)
	e.privateMode(1002, true)
	e.privateMode(1006, true)
}

// EnableMouseMotion additionally reports motion with no button held
// (mode 1003). Noisy; only enabled when hover tracking is requested.
func (e *escBuilder) EnableMouseMotion() {
	e.privateMode(1003, true)
}

// DisableMouse disables all mouse reporting modes.
func (e *escBuilder) DisableMouse() {
	e.privateMode(1006, false)
	e.privateMode(1003, false)
	e.privateMode(1002, false)
	e.privateMode(1000, false)
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// attrCodes maps attribute bits to their SGR parameter, in emission order.
var attrCodes = []struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
	{AttrStrikethrough, '9'},
}

// SetStyle sets the text style based on the given Style and terminal capabilities.
// It always starts from a reset so stale attributes never leak between cells.
func (e *escBuilder) SetStyle(s Style, caps Capabilities) {
	e.writeCSI()
	e.buf = append(e.buf, '0')

	for _, ac := range attrCodes {
		if s.HasAttr(ac.attr) {
			e.buf = append(e.buf, ';', ac.code)
		}
	}

	e.appendColor(s.Fg, true, caps)
	e.appendColor(s.Bg, false, caps)

	e.buf = append(e.buf, 'm')
}

// StyleDiff sets the text style by emitting only the SGR parameters
// that differ from the previously active style. Attribute removal has
// no clean per-attribute story (bold and dim share an off code), so a
// style that drops attributes falls back to the reset-based SetStyle.
func (e *escBuilder) StyleDiff(prev, next Style, caps Capabilities) {
	if prev.Attrs&^next.Attrs != 0 {
		e.SetStyle(next, caps)
		return
	}

	e.writeCSI()
	mark := len(e.buf)

	added := next.Attrs &^ prev.Attrs
	for _, ac := range attrCodes {
		if added.Has(ac.attr) {
			e.buf = append(e.buf, ';', ac.code)
		}
	}

	if !next.Fg.Equal(prev.Fg) {
		if next.Fg.IsDefault() {
			e.buf = append(e.buf, ';', '3', '9')
		} else {
			e.appendColor(next.Fg, true, caps)
		}
	}
	if !next.Bg.Equal(prev.Bg) {
		if next.Bg.IsDefault() {
			e.buf = append(e.buf, ';', '4', '9')
		} else {
			e.appendColor(next.Bg, false, caps)
		}
	}

	if len(e.buf) == mark {
		// Nothing representable differs; drop the bare CSI.
		e.buf = e.buf[:mark-2]
		return
	}
	// Every parameter was appended with a leading separator; the first
	// one must not have it.
	e.buf = append(e.buf[:mark], e.buf[mark+1:]...)
	e.buf = append(e.buf, 'm')
}

// appendColor appends the SGR parameters for a color, degrading to the
// best representation the terminal supports.
// fg selects foreground (38/30) versus background (48/40) codes.
func (e *escBuilder) appendColor(c Color, fg bool, caps Capabilities) {
	if c.IsDefault() {
		return
	}

	base := 48
	if fg {
		base = 38
	}

	switch c.Type() {
	case ColorANSI:
		idx := c.ANSI()
		if idx < 16 && caps.Colors >= Color16 {
			// Basic colors use the short forms: 30-37/90-97 for
			// foreground, 40-47/100-107 for background.
			code := 30 + int(idx)
			if idx >= 8 {
				code = 90 + int(idx) - 8
			}
			if !fg {
				code += 10
			}
			e.buf = append(e.buf, ';')
			e.writeInt(code)
		} else if caps.Colors >= Color256 {
			e.buf = append(e.buf, ';')
			e.writeInt(base)
			e.buf = append(e.buf, ';', '5', ';')
			e.writeInt(int(idx))
		}

	case ColorRGB:
		if caps.TrueColor && caps.Colors >= ColorTrue {
			r, g, b := c.RGB()
			e.buf = append(e.buf, ';')
			e.writeInt(base)
			e.buf = append(e.buf, ';', '2', ';')
			e.writeInt(int(r))
			e.buf = append(e.buf, ';')
			e.writeInt(int(g))
			e.buf = append(e.buf, ';')
			e.writeInt(int(b))
		} else if caps.Colors >= Color256 {
			ansi := c.ToANSI()
			e.buf = append(e.buf, ';')
			e.writeInt(base)
			e.buf = append(e.buf, ';', '5', ';')
			e.writeInt(int(ansi.ANSI()))
		}
	}
}

// WriteRune appends a UTF-8 encoded rune to the buffer.
func (e *escBuilder) WriteRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	e.buf = append(e.buf, buf[:n]...)
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
