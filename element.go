package tela

import (
	"strings"

	"github.com/google/uuid"
)

// TextAlign specifies how text is aligned within its content area.
type TextAlign int

const (
	// TextAlignLeft aligns text to the left edge (default).
	TextAlignLeft TextAlign = iota
	// TextAlignCenter centers text horizontally.
	TextAlignCenter
	// TextAlignRight aligns text to the right edge.
	TextAlignRight
)

// Element is a layout container with visual properties. It forms the
// render tree: layout runs over it, painting walks it, and input
// resolution hit-tests it.
type Element struct {
	id string

	// Tree structure. The element owns its children exclusively; there
	// are no parent back-pointers. Focus and hit-test order come from
	// flattened id lists rebuilt each frame.
	children []*Element

	// Layout properties
	style  LayoutStyle
	layout Layout

	// Visual properties
	border      BorderStyle
	borderStyle Style
	background  *Style // nil = transparent

	// Text properties
	text      string
	textStyle Style
	textAlign TextAlign

	// Focus properties
	focusable bool

	// Event handlers
	onKey   func(*KeyEvent)
	onMouse func(*MouseEvent)
	onClick func()
	onFocus func()
	onBlur  func()

	// Custom paint hook, run after the element's own painting.
	onPaint func(*Element, *PaintContext)

	// Custom measure function for non-text leaves; takes precedence
	// over text measurement.
	measure func(available Size) Size

	// Caret position within the content rect, shown while focused.
	caretX, caretY int
	showCaret      bool
}

var _ LayoutNode = (*Element)(nil)

// NewElement creates an element with the given options.
// By default an element is Auto-sized and lays children out in a column.
func NewElement(opts ...ElementOption) *Element {
	e := &Element{
		id:    uuid.NewString(),
		style: DefaultLayoutStyle(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the element's identifier.
func (e *Element) ID() string {
	return e.id
}

// Children returns the element's children in layout order.
func (e *Element) Children() []*Element {
	return e.children
}

// AddChild appends a child element. Moving a child between parents is
// the caller's job: RemoveChild from the old parent first, then
// AddChild to the new one.
func (e *Element) AddChild(child *Element) {
	e.children = append(e.children, child)
}

// RemoveChild detaches a child element. No-op if child isn't ours.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// Walk visits this element and all descendants depth-first, parents
// before children.
func (e *Element) Walk(visit func(*Element)) {
	visit(e)
	for _, c := range e.children {
		c.Walk(visit)
	}
}

// Focusable returns whether this element can receive keyboard focus.
func (e *Element) Focusable() bool {
	return e.focusable
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) {
	e.text = s
}

// SetCaret places the element's caret at a position relative to its
// content rect. The terminal cursor is parked there while the element
// has focus.
func (e *Element) SetCaret(x, y int) {
	e.caretX = x
	e.caretY = y
	e.showCaret = true
}

// HideCaret stops showing the caret for this element.
func (e *Element) HideCaret() {
	e.showCaret = false
}

// Bounds returns the element's border box from the last layout solve.
func (e *Element) Bounds() Rect {
	return e.layout.Rect
}

// ContentBounds returns the element's content box from the last layout
// solve.
func (e *Element) ContentBounds() Rect {
	return e.layout.ContentRect
}

// HitTest returns the deepest element containing the point, preferring
// later siblings (painted on top). Returns nil if the point is outside
// this element.
func (e *Element) HitTest(x, y int) *Element {
	if !e.layout.Rect.Contains(x, y) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := e.children[i].HitTest(x, y); hit != nil {
			return hit
		}
	}
	return e
}

// FocusOrder returns the ids of all focusable elements in the subtree,
// in traversal order. Fed to the FocusManager each frame.
func (e *Element) FocusOrder() []string {
	var ids []string
	e.Walk(func(el *Element) {
		if el.focusable {
			ids = append(ids, el.id)
		}
	})
	return ids
}

// Find returns the element with the given id in the subtree, or nil.
func (e *Element) Find(id string) *Element {
	var found *Element
	e.Walk(func(el *Element) {
		if found == nil && el.id == id {
			found = el
		}
	})
	return found
}

// LayoutStyle returns the element's layout style.
func (e *Element) LayoutStyle() LayoutStyle {
	return e.style
}

// SetLayoutStyle replaces the element's layout style.
func (e *Element) SetLayoutStyle(s LayoutStyle) {
	e.style = s
}

// LayoutChildren returns the children as layout nodes.
func (e *Element) LayoutChildren() []LayoutNode {
	nodes := make([]LayoutNode, len(e.children))
	for i, c := range e.children {
		nodes[i] = c
	}
	return nodes
}

// Measure returns the element's natural content size, capped to the
// available space. A custom measure function (WithMeasure) wins over
// the default text measurement, letting non-text leaves report an
// intrinsic size for Auto layout.
func (e *Element) Measure(available Size) Size {
	if e.measure != nil {
		return capSize(e.measure(available), available)
	}
	if e.text == "" {
		return Size{}
	}

	w, h := 0, 0
	for _, line := range strings.Split(e.text, "\n") {
		if lw := StringWidth(line); lw > w {
			w = lw
		}
		h++
	}
	return capSize(Size{Width: w, Height: h}, available)
}

// capSize clamps s to the available space; a zero available dimension
// means unconstrained.
func capSize(s, available Size) Size {
	if available.Width > 0 && s.Width > available.Width {
		s.Width = available.Width
	}
	if available.Height > 0 && s.Height > available.Height {
		s.Height = available.Height
	}
	return s
}

// SetLayout records the result of a layout solve.
func (e *Element) SetLayout(l Layout) {
	e.layout = l
}

// GetLayout returns the result of the last layout solve.
func (e *Element) GetLayout() Layout {
	return e.layout
}

