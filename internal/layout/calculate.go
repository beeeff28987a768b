package layout

// Calculate performs a full layout solve on the tree rooted at root.
// Every node has its Layout overwritten with absolute coordinates.
//
// viewport is the space allocated to the root, typically the terminal
// rectangle. The solve runs in two passes: a bottom-up measure pass
// (leaves report intrinsic sizes, Auto containers aggregate them) and a
// top-down arrange pass (concrete cells distributed per SizeSpec).
func Calculate(root Node, viewport Rect) {
	CalculateWithOverflow(root, viewport, nil)
}

// CalculateWithOverflow is Calculate with a diagnostic hook invoked
// whenever a node's non-Fill children request more main-axis space than
// its content box provides. Overflowing layouts are not an error: Fill
// siblings collapse to zero and the surplus is reported to the hook so
// a scroll collaborator can take over.
func CalculateWithOverflow(root Node, viewport Rect, onOverflow OverflowFunc) {
	if root == nil {
		return
	}
	s := solver{onOverflow: onOverflow}
	s.solve(root, viewport)
}

// solver carries per-solve state. A fresh value is used for every
// Calculate call, so solves never observe each other.
type solver struct {
	onOverflow OverflowFunc
}

func (s *solver) solve(root Node, viewport Rect) {
	style := root.LayoutStyle()
	outer := viewport.Inset(style.Margin)
	avail := Size{Width: max(0, outer.Width), Height: max(0, outer.Height)}

	box := s.measureBox(root, avail)
	width := box.Width
	height := box.Height
	if style.Width.IsFill() {
		width = avail.Width
	}
	if style.Height.IsFill() {
		height = avail.Height
	}

	s.arrange(root, NewRect(outer.X, outer.Y, width, height))
}

// arrange assigns the node's layout within the given border box and
// recurses into children. The border box has already been inset by the
// node's margin by the caller.
func (s *solver) arrange(node Node, borderBox Rect) {
	style := node.LayoutStyle()

	borderBox.Width = max(0, borderBox.Width)
	borderBox.Height = max(0, borderBox.Height)

	content := borderBox.Inset(style.Padding)
	content.Width = max(0, content.Width)
	content.Height = max(0, content.Height)

	if children := node.LayoutChildren(); len(children) > 0 {
		s.arrangeChildren(node, style, content, children)
	}

	node.SetLayout(Layout{Rect: borderBox, ContentRect: content})
}

// arrangeItem holds intermediate sizing state for one child.
// Stack-allocated per arrange call, never stored on nodes.
type arrangeItem struct {
	main, cross       int // Border-box extent on each axis
	mainPos, crossPos int // Offset within the parent content box
	mainMargin        int
	crossMargin       int
	fill              bool
}

func (s *solver) arrangeChildren(node Node, style Style, content Rect, children []Node) {
	isRow := style.Direction == Row

	mainSize := content.Width
	crossSize := content.Height
	if !isRow {
		mainSize, crossSize = crossSize, mainSize
	}

	items := make([]arrangeItem, len(children))
	fillCount := 0
	used := 0

	// Pass 1: resolve main-axis sizes for everything except Fill.
	for i, child := range children {
		cs := child.LayoutStyle()
		item := &items[i]

		if isRow {
			item.mainMargin = cs.Margin.Horizontal()
			item.crossMargin = cs.Margin.Vertical()
		} else {
			item.mainMargin = cs.Margin.Vertical()
			item.crossMargin = cs.Margin.Horizontal()
		}

		spec := cs.Width
		if !isRow {
			spec = cs.Height
		}

		switch {
		case spec.IsFill():
			item.fill = true
			fillCount++
		case spec.IsAuto():
			box := s.measureBox(child, s.childAvail(content, cs))
			m := box.Width
			if !isRow {
				m = box.Height
			}
			item.main = min(m, max(0, mainSize-item.mainMargin))
		default:
			item.main = spec.Resolve(mainSize, 0)
		}

		used += item.main + item.mainMargin
	}

	// Pass 2: split remaining space among Fill children. The remainder
	// cells go to the first Fill sibling so totals are exact. If the
	// non-Fill children already exceed the content box, Fill children
	// collapse to zero and the overflow is reported to the hook.
	totalGap := style.Gap * max(0, len(children)-1)
	remaining := mainSize - used - totalGap
	if remaining < 0 {
		if s.onOverflow != nil {
			s.onOverflow(node, -remaining)
		}
		remaining = 0
	}
	if fillCount > 0 {
		share := remaining / fillCount
		extra := remaining % fillCount
		for i := range items {
			if !items[i].fill {
				continue
			}
			items[i].main = share + extra
			extra = 0
		}
	}

	// Pass 3: cross-axis sizing and alignment.
	for i, child := range children {
		cs := child.LayoutStyle()
		item := &items[i]

		spec := cs.Height
		if !isRow {
			spec = cs.Width
		}

		availCross := max(0, crossSize-item.crossMargin)
		switch {
		case spec.IsFill():
			item.cross = availCross
		case spec.IsAuto():
			if style.Align == AlignStretch {
				item.cross = availCross
			} else {
				box := s.measureBox(child, s.childAvail(content, cs))
				c := box.Height
				if !isRow {
					c = box.Width
				}
				item.cross = min(c, availCross)
			}
		default:
			item.cross = min(spec.Resolve(crossSize, 0), availCross)
		}

		outer := item.cross + item.crossMargin
		switch style.Align {
		case AlignCenter:
			item.crossPos = max(0, (crossSize-outer)/2)
		case AlignEnd:
			item.crossPos = max(0, crossSize-outer)
		default: // AlignStart, AlignStretch
			item.crossPos = 0
		}
	}

	// Pass 4: stack along the main axis with configured gap, convert to
	// absolute rects, and recurse. The slot includes the child's margin;
	// insetting it yields the child's border box.
	offset := 0
	for i := range items {
		items[i].mainPos = offset
		offset += items[i].main + items[i].mainMargin + style.Gap
	}

	for i, child := range children {
		cs := child.LayoutStyle()
		item := items[i]

		var slot Rect
		if isRow {
			slot = NewRect(
				content.X+item.mainPos,
				content.Y+item.crossPos,
				item.main+item.mainMargin,
				item.cross+item.crossMargin,
			)
		} else {
			slot = NewRect(
				content.X+item.crossPos,
				content.Y+item.mainPos,
				item.cross+item.crossMargin,
				item.main+item.mainMargin,
			)
		}

		s.arrange(child, slot.Inset(cs.Margin))
	}
}

// childAvail returns the space available to a child for measurement:
// the parent content box shrunk by the child's own margin.
func (s *solver) childAvail(content Rect, cs Style) Size {
	return Size{
		Width:  max(0, content.Width-cs.Margin.Horizontal()),
		Height: max(0, content.Height-cs.Margin.Vertical()),
	}
}

// measureBox resolves a node's border-box size under its own SizeSpecs.
// Fixed and Percent resolve directly; Auto consults the measure pass and
// clamps to available space; Fill reports zero (the parent's arrange
// pass assigns its real extent).
func (s *solver) measureBox(node Node, avail Size) Size {
	style := node.LayoutStyle()

	var natural Size
	if style.Width.IsAuto() || style.Height.IsAuto() {
		inner := Size{
			Width:  max(0, avail.Width-style.Padding.Horizontal()),
			Height: max(0, avail.Height-style.Padding.Vertical()),
		}
		content := s.contentSize(node, inner)
		natural = Size{
			Width:  content.Width + style.Padding.Horizontal(),
			Height: content.Height + style.Padding.Vertical(),
		}
	}

	return Size{
		Width:  resolveAxis(style.Width, avail.Width, natural.Width),
		Height: resolveAxis(style.Height, avail.Height, natural.Height),
	}
}

// contentSize computes the natural content size of a node: leaves report
// through Measure, containers sum children on the stacking axis and take
// the max on the cross axis.
func (s *solver) contentSize(node Node, inner Size) Size {
	children := node.LayoutChildren()
	if len(children) == 0 {
		sz := node.Measure(inner)
		return Size{Width: max(0, sz.Width), Height: max(0, sz.Height)}
	}

	style := node.LayoutStyle()
	isRow := style.Direction == Row

	main, cross := 0, 0
	for _, child := range children {
		cs := child.LayoutStyle()
		childAvail := Size{
			Width:  max(0, inner.Width-cs.Margin.Horizontal()),
			Height: max(0, inner.Height-cs.Margin.Vertical()),
		}
		box := s.measureBox(child, childAvail)
		outerW := box.Width + cs.Margin.Horizontal()
		outerH := box.Height + cs.Margin.Vertical()

		if isRow {
			main += outerW
			cross = max(cross, outerH)
		} else {
			main += outerH
			cross = max(cross, outerW)
		}
	}
	main += style.Gap * max(0, len(children)-1)

	if isRow {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func resolveAxis(spec SizeSpec, avail, natural int) int {
	switch spec.Unit {
	case UnitFixed:
		return max(0, int(spec.Amount))
	case UnitPercent:
		return int(float64(avail) * spec.Amount / 100.0)
	case UnitFill:
		return 0
	default: // UnitAuto: measured size, clamped to available space
		return min(natural, avail)
	}
}
