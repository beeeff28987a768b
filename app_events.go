package tela

import "github.com/telaui/tela/internal/debug"

// readInputEvents reads terminal input in a goroutine and queues
// events for the UI goroutine.
func (a *App) readInputEvents() {
	for {
		select {
		case <-a.stopCh:
			return
		default:
		}

		event, ok := a.reader.PollEvent(a.inputLatency)
		if !ok {
			continue
		}

		ev := event
		select {
		case a.eventQueue <- func() { a.Dispatch(ev) }:
		case <-a.stopCh:
			return
		}
	}
}

// Dispatch resolves a raw event to its target and sends it through the
// router. Resizes are handled internally; mouse events are hit-tested
// against overlays and the element tree; key events go to the focused
// element.
func (a *App) Dispatch(ev Event) {
	switch e := ev.(type) {
	case *ResizeEvent:
		a.dispatchResize(e)
	case *MouseEvent:
		a.dispatchMouse(e)
	case *KeyEvent:
		a.dispatchKey(e)
	default:
		ev.SetContext(a.viewName)
		a.router.Dispatch(ev)
	}
}

func (a *App) dispatchResize(ev *ResizeEvent) {
	debug.Log("app: resize %dx%d", ev.Width, ev.Height)
	a.buffer.Resize(ev.Width, ev.Height)
	a.needsFullRedraw = true
	a.MarkDirty()

	ev.SetContext(a.viewName)
	a.router.Dispatch(ev)
}

func (a *App) dispatchKey(ev *KeyEvent) {
	// Escape dismisses the topmost overlay that opted in.
	if ev.Key == KeyEscape {
		if ov := a.topDismissableOnEscape(); ov != nil {
			a.overlays.Dismiss(ov.ID)
			return
		}
	}

	// Tab cycles focus within the active scope.
	if ev.Key == KeyTab {
		if ev.Mod.Has(ModShift) {
			a.focus.Prev()
		} else {
			a.focus.Next()
		}
		return
	}

	focused := a.focus.Focused()
	ev.SetSource(focused)
	ev.SetContext(a.viewName)

	if el := a.findElement(focused); el != nil && el.onKey != nil {
		el.onKey(ev)
		if ev.Cancelled() {
			return
		}
	}

	a.router.Dispatch(ev)
}

func (a *App) dispatchMouse(ev *MouseEvent) {
	// A modal swallows interaction outside its bounds; a click outside
	// dismisses it when configured to.
	if modal := a.overlays.ActiveModal(); modal != nil && !modal.Bounds.Contains(ev.X, ev.Y) {
		if modal.DismissOnClickOutside && ev.Action == MousePress {
			a.overlays.Dismiss(modal.ID)
		}
		return
	}

	hit := a.overlays.HitTest(ev.X, ev.Y)

	// A press outside any dismiss-on-click-outside overlay closes it,
	// topmost first.
	if ev.Action == MousePress {
		for _, ov := range a.overlays.PaintOrder() {
			if ov.DismissOnClickOutside && (hit == nil || hit.ID != ov.ID) && !ov.Bounds.Contains(ev.X, ev.Y) {
				a.overlays.Dismiss(ov.ID)
			}
		}
	}

	// Resolve the target element, inside the hit overlay or the root.
	tree := a.root
	if hit != nil && hit.Root != nil {
		tree = hit.Root
	}

	var target *Element
	if tree != nil {
		target = tree.HitTest(ev.X, ev.Y)
	}

	if target != nil {
		ev.SetSource(target.ID())
	}
	ev.SetContext(a.viewName)

	if target != nil {
		// Clicking a focusable element moves focus to it.
		if ev.Action == MousePress && target.Focusable() {
			a.focus.SetFocus(target.ID())
		}
		if target.onMouse != nil {
			target.onMouse(ev)
		}
		if ev.Action == MouseClick && target.onClick != nil && !ev.Cancelled() {
			target.onClick()
			a.MarkDirty()
		}
		if ev.Cancelled() {
			return
		}
	}

	a.router.Dispatch(ev)
}

// topDismissableOnEscape returns the topmost overlay with
// DismissOnEscape set, or nil.
func (a *App) topDismissableOnEscape() *Overlay {
	order := a.overlays.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].DismissOnEscape {
			return order[i]
		}
	}
	return nil
}

// Emit queues an application event (action, change) for dispatch on
// the UI goroutine. Safe to call from handlers.
func (a *App) Emit(ev Event) {
	select {
	case a.eventQueue <- func() { a.Dispatch(ev) }:
	case <-a.stopCh:
	}
}
