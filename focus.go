package tela

import "github.com/telaui/tela/internal/debug"

// FocusChangeFunc is notified when focus moves. Either id may be empty
// when focus is gained from or lost to nothing.
type FocusChangeFunc func(blurred, focused string)

// focusScope is one level of the focus stack: an ordered list of
// focusable element ids and the current position within it.
type focusScope struct {
	ids     []string
	current int // index into ids, -1 = none
}

// FocusManager tracks which element has keyboard focus. Focus order is
// an ordered list of element ids rebuilt each frame from the visible
// tree; focus follows the element id across rebuilds, falling back to
// the nearest index when the focused element disappears.
//
// Modal overlays push a new focus scope so Tab cycles only inside the
// modal; popping the scope restores the previous focus exactly.
type FocusManager struct {
	stack    []*focusScope
	onChange FocusChangeFunc
}

// NewFocusManager creates a FocusManager with an empty base scope.
func NewFocusManager() *FocusManager {
	return &FocusManager{
		stack: []*focusScope{{current: -1}},
	}
}

// OnChange installs a hook notified whenever focus moves.
func (f *FocusManager) OnChange(fn FocusChangeFunc) {
	f.onChange = fn
}

func (f *FocusManager) active() *focusScope {
	return f.stack[len(f.stack)-1]
}

// Focused returns the focused element id, or "" if nothing is focused.
func (f *FocusManager) Focused() string {
	s := f.active()
	if s.current < 0 || s.current >= len(s.ids) {
		return ""
	}
	return s.ids[s.current]
}

// SetOrder replaces the active scope's focus order with the ids of the
// currently visible focusable elements, in traversal order.
//
// If the focused element is still present, focus stays with it at its
// new position. If it vanished, focus falls back to the element now at
// the old index (clamped), so a deletion moves focus to the neighbor
// rather than dropping it.
func (f *FocusManager) SetOrder(ids []string) {
	s := f.active()
	prev := f.Focused()
	oldIndex := s.current

	s.ids = append(s.ids[:0], ids...)

	if prev != "" {
		for i, id := range s.ids {
			if id == prev {
				s.current = i
				return
			}
		}
	}

	if len(s.ids) == 0 {
		s.current = -1
	} else if oldIndex >= 0 {
		s.current = min(oldIndex, len(s.ids)-1)
	} else {
		s.current = -1
	}

	if now := f.Focused(); now != prev {
		f.notify(prev, now)
	}
}

// SetFocus moves focus to the element with the given id.
// Returns false if the id is not in the active focus order.
func (f *FocusManager) SetFocus(id string) bool {
	s := f.active()
	for i, candidate := range s.ids {
		if candidate == id {
			f.moveTo(i)
			return true
		}
	}
	return false
}

// ClearFocus removes focus from the active scope.
func (f *FocusManager) ClearFocus() {
	s := f.active()
	if s.current == -1 {
		return
	}
	prev := f.Focused()
	s.current = -1
	f.notify(prev, "")
}

// Next moves focus forward, wrapping to the first element.
func (f *FocusManager) Next() {
	f.step(1)
}

// Prev moves focus backward, wrapping to the last element.
func (f *FocusManager) Prev() {
	f.step(-1)
}

func (f *FocusManager) step(delta int) {
	s := f.active()
	if len(s.ids) == 0 {
		return
	}
	next := s.current + delta
	// Wrap; an unfocused scope starts at the first or last element.
	if s.current == -1 {
		if delta > 0 {
			next = 0
		} else {
			next = len(s.ids) - 1
		}
	} else {
		next = ((next % len(s.ids)) + len(s.ids)) % len(s.ids)
	}
	f.moveTo(next)
}

func (f *FocusManager) moveTo(index int) {
	s := f.active()
	if index == s.current {
		return
	}
	prev := f.Focused()
	s.current = index
	f.notify(prev, f.Focused())
}

// PushScope starts a new focus scope containing only the given ids,
// focusing the first one. The previous scope's focus is preserved and
// restored by PopScope. Used when a modal overlay traps focus.
func (f *FocusManager) PushScope(ids []string) {
	prev := f.Focused()
	s := &focusScope{ids: append([]string(nil), ids...), current: -1}
	if len(s.ids) > 0 {
		s.current = 0
	}
	f.stack = append(f.stack, s)
	debug.Log("focus: push scope (%d ids), depth=%d", len(ids), len(f.stack))
	f.notify(prev, f.Focused())
}

// PopScope discards the top focus scope, restoring focus to whatever
// was focused before the matching PushScope. The base scope is never
// popped.
func (f *FocusManager) PopScope() {
	if len(f.stack) <= 1 {
		return
	}
	prev := f.Focused()
	f.stack = f.stack[:len(f.stack)-1]
	debug.Log("focus: pop scope, depth=%d", len(f.stack))
	f.notify(prev, f.Focused())
}

// ScopeDepth returns how many focus scopes are stacked, including the
// base scope.
func (f *FocusManager) ScopeDepth() int {
	return len(f.stack)
}

func (f *FocusManager) notify(blurred, focused string) {
	if blurred == focused {
		return
	}
	if f.onChange != nil {
		f.onChange(blurred, focused)
	}
}
