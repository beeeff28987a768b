package tela

import "github.com/telaui/tela/internal/debug"

// render lays out and paints the frame, then flushes it.
//
// Every frame: solve layout for the root and each overlay, rebuild the
// focus order from the visible tree, paint bottom to top, park the
// cursor at the focused element's caret, and diff-flush. When the
// frame's only dirt is region-scoped (overlay shown or dismissed) the
// diff scan is restricted to those rects.
func (a *App) render() error {
	width, height := a.terminal.Size()

	// Handle rapid resizes that raced the resize event.
	if a.buffer.Width() != width || a.buffer.Height() != height {
		a.buffer.Resize(width, height)
		a.needsFullRedraw = true
	}

	viewport := a.buffer.Rect()

	if a.root != nil {
		CalculateWithOverflow(a.root, viewport, a.logOverflow)
	}
	for _, ov := range a.overlays.PaintOrder() {
		if ov.Root != nil {
			CalculateWithOverflow(ov.Root, ov.Bounds.Intersect(viewport), a.logOverflow)
		}
	}

	a.rebuildFocusOrder()

	a.buffer.Clear()
	ctx := NewPaintContext(a.buffer, a.focus.Focused())
	Paint(ctx, a.root)
	for _, ov := range a.overlays.PaintOrder() {
		Paint(ctx, ov.Root)
	}

	if x, y, ok := ctx.Caret(); ok {
		a.buffer.SetCursor(x, y)
		a.buffer.ShowCursor(true)
	} else {
		a.buffer.ShowCursor(a.cursorVisible)
	}

	fullDirty := a.fullDirty.Swap(false)
	regionOnly := !fullDirty && !a.regions.IsEmpty()
	defer a.regions.Clear()

	if a.needsFullRedraw {
		a.needsFullRedraw = false
		return a.renderer.RenderFull(a.buffer)
	}
	if regionOnly {
		return a.renderer.RenderRegions(a.buffer, a.regions)
	}
	return a.renderer.Render(a.buffer)
}

// rebuildFocusOrder refreshes the active focus scope from the visible
// tree. While an overlay traps focus its scope was seeded on show, so
// only the trapping overlay's own tree is rescanned.
func (a *App) rebuildFocusOrder() {
	if a.focus.ScopeDepth() > 1 {
		if modal := a.overlays.ActiveModal(); modal != nil && modal.Root != nil {
			a.focus.SetOrder(modal.Root.FocusOrder())
		}
		return
	}
	if a.root == nil {
		a.focus.SetOrder(nil)
		return
	}
	a.focus.SetOrder(a.root.FocusOrder())
}

// logOverflow records layout overflow diagnostics. Overflow is never
// fatal; the solver collapses flexible children and reports here.
func (a *App) logOverflow(node LayoutNode, overflow int) {
	if el, ok := node.(*Element); ok {
		debug.Log("layout: overflow of %d cells in element %s", overflow, el.ID())
		return
	}
	debug.Log("layout: overflow of %d cells", overflow)
}
