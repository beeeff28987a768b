package tela

import (
	"sort"

	"github.com/telaui/tela/internal/debug"
)

// HandlerScope controls which events reach a handler.
type HandlerScope int

const (
	// ScopeGlobal handlers receive every event of their kind.
	ScopeGlobal HandlerScope = iota
	// ScopeView handlers receive events whose context matches their own
	// (the view the event was resolved to).
	ScopeView
	// ScopeElement handlers receive events whose source element matches.
	ScopeElement
	// ScopeModal handlers receive events only while their overlay is the
	// active modal.
	ScopeModal
)

// HandlerFunc processes a dispatched event. Calling ev.Cancel() stops
// propagation to lower-priority handlers.
type HandlerFunc func(ev Event)

// HandlerFailureFunc is notified when a handler panics. The panic is
// recovered so one faulty handler can't take down the event loop.
type HandlerFailureFunc func(ctx string, recovered any)

// HandlerID identifies a registered handler for unregistration.
type HandlerID uint64

type handlerEntry struct {
	id       HandlerID
	kind     EventKind
	scope    HandlerScope
	context  string // view name, element id, or overlay id per scope
	priority int
	fn       HandlerFunc
}

// Router dispatches events to registered handlers. Handlers run in
// descending priority order; equal priorities run in registration
// order. Dispatch stops as soon as a handler cancels the event.
//
// Router is not safe for concurrent use; all calls must come from the
// UI goroutine.
type Router struct {
	entries   []handlerEntry
	nextID    HandlerID
	sorted    bool
	modal     string // active modal overlay id, empty when none
	onFailure HandlerFailureFunc
}

// NewRouter creates an empty event router.
func NewRouter() *Router {
	return &Router{nextID: 1}
}

// OnHandlerFailure installs a hook notified when a handler panics.
func (r *Router) OnHandlerFailure(fn HandlerFailureFunc) {
	r.onFailure = fn
}

// Register adds a handler for events of the given kind.
// Context names the view (ScopeView), element (ScopeElement), or
// overlay (ScopeModal) the handler belongs to; it is ignored for
// ScopeGlobal. Higher priority runs first.
func (r *Router) Register(kind EventKind, scope HandlerScope, context string, priority int, fn HandlerFunc) HandlerID {
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, handlerEntry{
		id:       id,
		kind:     kind,
		scope:    scope,
		context:  context,
		priority: priority,
		fn:       fn,
	})
	r.sorted = false
	return id
}

// Unregister removes a single handler. Unknown ids are ignored.
func (r *Router) Unregister(id HandlerID) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// UnregisterContext removes every non-global handler registered under
// the given context. Used when a view or overlay is torn down.
func (r *Router) UnregisterContext(context string) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.scope != ScopeGlobal && e.context == context {
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
}

// SetModal restricts dispatch to the given overlay's modal handlers
// (global handlers stay active). Pass the overlay id.
func (r *Router) SetModal(overlayID string) {
	r.modal = overlayID
}

// ClearModal lifts the modal restriction.
func (r *Router) ClearModal() {
	r.modal = ""
}

// ensureSorted orders entries by descending priority, stable on
// registration order.
func (r *Router) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority > r.entries[j].priority
		}
		return r.entries[i].id < r.entries[j].id
	})
	r.sorted = true
}

// matches reports whether the entry should receive the event.
func (r *Router) matches(e *handlerEntry, ev Event) bool {
	if e.kind != ev.Kind() {
		return false
	}

	// An active modal suppresses everything except its own handlers and
	// globals.
	if r.modal != "" && e.scope != ScopeGlobal {
		return e.scope == ScopeModal && e.context == r.modal
	}

	switch e.scope {
	case ScopeGlobal:
		return true
	case ScopeView:
		return e.context == ev.Context()
	case ScopeElement:
		return e.context == ev.Source()
	case ScopeModal:
		return false // modal handlers only fire while their modal is up
	}
	return false
}

// Dispatch sends an event through the handler chain.
func (r *Router) Dispatch(ev Event) {
	r.ensureSorted()

	// Snapshot so handlers can register/unregister during dispatch
	// without invalidating the iteration.
	entries := make([]handlerEntry, len(r.entries))
	copy(entries, r.entries)

	for i := range entries {
		if !r.matches(&entries[i], ev) {
			continue
		}
		r.invoke(&entries[i], ev)
		if ev.Cancelled() {
			return
		}
	}
}

// invoke runs one handler, recovering panics.
func (r *Router) invoke(e *handlerEntry, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			debug.Log("handler panic: kind=%v scope=%v context=%q: %v", e.kind, e.scope, e.context, rec)
			if r.onFailure != nil {
				r.onFailure(e.context, rec)
			}
		}
	}()
	e.fn(ev)
}
