package tela

import "strings"

// PaintContext carries the destination buffer and clip state through a
// paint traversal. All drawing is clipped, so an element can't paint
// outside the region its parent granted it.
type PaintContext struct {
	buf     *Buffer
	clip    Rect
	focused string // focused element id, "" when none

	caretX   int
	caretY   int
	hasCaret bool
}

// NewPaintContext creates a paint context over the whole buffer.
// focusedID names the element whose caret should drive the terminal
// cursor this frame.
func NewPaintContext(buf *Buffer, focusedID string) *PaintContext {
	return &PaintContext{
		buf:     buf,
		clip:    buf.Rect(),
		focused: focusedID,
	}
}

// Clipped returns a child context clipped to the intersection of the
// current clip and the given rect.
func (p *PaintContext) Clipped(r Rect) *PaintContext {
	child := *p
	child.clip = p.clip.Intersect(r)
	return &child
}

// Clip returns the current clip rectangle.
func (p *PaintContext) Clip() Rect {
	return p.clip
}

// SetString draws a string clipped to the current clip rect.
// Returns the display width drawn.
func (p *PaintContext) SetString(x, y int, s string, style Style) int {
	return p.buf.SetStringClipped(x, y, s, style, p.clip)
}

// Fill fills a rect (clipped) with the given rune and style.
func (p *PaintContext) Fill(r Rect, ch rune, style Style) {
	p.buf.Fill(r.Intersect(p.clip), ch, style)
}

// FillGradient fills a rect (clipped) with a gradient background.
func (p *PaintContext) FillGradient(r Rect, ch rune, g Gradient, base Style) {
	p.buf.FillGradient(r.Intersect(p.clip), ch, g, base)
}

// SetRune draws a single rune if it falls inside the clip rect.
func (p *PaintContext) SetRune(x, y int, ch rune, style Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf.SetRune(x, y, ch, style)
}

// Caret returns the caret position recorded by the focused element
// during this paint, if any.
func (p *PaintContext) Caret() (x, y int, ok bool) {
	return p.caretX, p.caretY, p.hasCaret
}

// Paint draws an element subtree into the context, depth-first so
// children appear above their parent.
func Paint(p *PaintContext, e *Element) {
	if e == nil {
		return
	}

	rect := e.Bounds()
	if rect.Intersect(p.clip).IsEmpty() {
		return
	}

	ep := p.Clipped(rect)

	if e.background != nil {
		ep.Fill(rect, ' ', *e.background)
	}
	if e.border != BorderNone {
		paintBorder(ep, rect, e.border, e.borderStyle)
	}
	if e.text != "" {
		paintText(ep, e)
	}

	// The focused element's caret drives the terminal cursor.
	if e.showCaret && e.id == p.focused {
		content := e.ContentBounds()
		p.caretX = content.X + e.caretX
		p.caretY = content.Y + e.caretY
		p.hasCaret = true
	}

	for _, child := range e.children {
		Paint(ep, child)
	}

	if e.onPaint != nil {
		e.onPaint(e, ep)
	}
}

// paintText draws the element's text lines inside its content rect,
// honoring horizontal alignment and clipping to the content height.
func paintText(p *PaintContext, e *Element) {
	content := e.ContentBounds()
	if content.IsEmpty() {
		return
	}

	cp := p.Clipped(content)
	lines := strings.Split(e.text, "\n")
	for i, line := range lines {
		if i >= content.Height {
			break
		}
		x := content.X
		switch e.textAlign {
		case TextAlignCenter:
			x += max(0, (content.Width-StringWidth(line))/2)
		case TextAlignRight:
			x += max(0, content.Width-StringWidth(line))
		}
		cp.SetString(x, content.Y+i, line, e.textStyle)
	}
}

// paintBorder draws a box border on the perimeter of rect.
func paintBorder(p *PaintContext, rect Rect, style BorderStyle, paint Style) {
	if rect.Width < 2 || rect.Height < 2 {
		return
	}

	chars := style.Chars()
	right := rect.Right() - 1
	bottom := rect.Bottom() - 1

	p.SetRune(rect.X, rect.Y, chars.TopLeft, paint)
	p.SetRune(right, rect.Y, chars.TopRight, paint)
	p.SetRune(rect.X, bottom, chars.BottomLeft, paint)
	p.SetRune(right, bottom, chars.BottomRight, paint)

	for x := rect.X + 1; x < right; x++ {
		p.SetRune(x, rect.Y, chars.Top, paint)
		p.SetRune(x, bottom, chars.Bottom, paint)
	}
	for y := rect.Y + 1; y < bottom; y++ {
		p.SetRune(rect.X, y, chars.Left, paint)
		p.SetRune(right, y, chars.Right, paint)
	}
}
