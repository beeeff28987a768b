package tela

// ElementOption configures an Element at construction.
type ElementOption func(*Element)

// WithID sets an explicit element id instead of a generated one.
// Useful for elements referenced by handlers or tests.
func WithID(id string) ElementOption {
	return func(e *Element) { e.id = id }
}

// WithWidth sets the element's width spec.
func WithWidth(w SizeSpec) ElementOption {
	return func(e *Element) { e.style.Width = w }
}

// WithHeight sets the element's height spec.
func WithHeight(h SizeSpec) ElementOption {
	return func(e *Element) { e.style.Height = h }
}

// WithDirection sets the main axis for child layout.
func WithDirection(d Direction) ElementOption {
	return func(e *Element) { e.style.Direction = d }
}

// WithAlign sets cross-axis alignment for children.
func WithAlign(a Align) ElementOption {
	return func(e *Element) { e.style.Align = a }
}

// WithGap sets spacing between adjacent children.
func WithGap(n int) ElementOption {
	return func(e *Element) { e.style.Gap = n }
}

// WithPadding sets the element's padding.
func WithPadding(p Edges) ElementOption {
	return func(e *Element) { e.style.Padding = p }
}

// WithMargin sets the element's margin.
func WithMargin(m Edges) ElementOption {
	return func(e *Element) { e.style.Margin = m }
}

// WithText sets the element's text content.
func WithText(s string) ElementOption {
	return func(e *Element) { e.text = s }
}

// WithTextStyle sets the style used for the element's text.
func WithTextStyle(s Style) ElementOption {
	return func(e *Element) { e.textStyle = s }
}

// WithTextAlign sets horizontal text alignment.
func WithTextAlign(a TextAlign) ElementOption {
	return func(e *Element) { e.textAlign = a }
}

// WithBackground fills the element's border box with the given style.
func WithBackground(s Style) ElementOption {
	return func(e *Element) { e.background = &s }
}

// WithBorder draws a border around the element. The border occupies
// one cell on each side, added to the element's padding so content
// never overlaps it.
func WithBorder(style BorderStyle, paint Style) ElementOption {
	return func(e *Element) {
		e.border = style
		e.borderStyle = paint
		if style != BorderNone {
			e.style.Padding.Top++
			e.style.Padding.Right++
			e.style.Padding.Bottom++
			e.style.Padding.Left++
		}
	}
}

// WithFocusable marks the element as able to receive keyboard focus.
func WithFocusable() ElementOption {
	return func(e *Element) { e.focusable = true }
}

// WithOnKey installs a key handler invoked while the element is focused.
func WithOnKey(fn func(*KeyEvent)) ElementOption {
	return func(e *Element) { e.onKey = fn }
}

// WithOnMouse installs a handler for mouse events targeting the element.
func WithOnMouse(fn func(*MouseEvent)) ElementOption {
	return func(e *Element) { e.onMouse = fn }
}

// WithOnClick installs a handler for synthesized clicks on the element.
func WithOnClick(fn func()) ElementOption {
	return func(e *Element) { e.onClick = fn }
}

// WithOnFocus installs a hook run when the element gains focus.
func WithOnFocus(fn func()) ElementOption {
	return func(e *Element) { e.onFocus = fn }
}

// WithOnBlur installs a hook run when the element loses focus.
func WithOnBlur(fn func()) ElementOption {
	return func(e *Element) { e.onBlur = fn }
}

// WithOnPaint installs a custom paint hook, run after the element's own
// background, border, and text painting.
func WithOnPaint(fn func(*Element, *PaintContext)) ElementOption {
	return func(e *Element) { e.onPaint = fn }
}

// WithMeasure installs a custom measure function reporting the
// element's intrinsic content size. Used by Auto sizing for leaves that
// draw something other than text (typically paired with WithOnPaint).
// The result is capped to the available space.
func WithMeasure(fn func(available Size) Size) ElementOption {
	return func(e *Element) { e.measure = fn }
}

// WithChildren appends child elements.
func WithChildren(children ...*Element) ElementOption {
	return func(e *Element) {
		for _, c := range children {
			e.AddChild(c)
		}
	}
}
