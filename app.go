package tela

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/telaui/tela/internal/debug"
)

// InputLatencyBlocking is a special value for WithInputLatency that
// makes the event reader block indefinitely until input is available.
const InputLatencyBlocking = -1 * time.Millisecond

// App manages the application lifecycle: terminal setup, event loop,
// layout, and rendering. All UI state is owned by the goroutine running
// Run; background work reaches it through QueueUpdate.
type App struct {
	terminal Terminal
	buffer   *Buffer
	renderer *Renderer
	reader   EventReader
	router   *Router
	focus    *FocusManager
	overlays *OverlayManager
	regions  *DirtyRegions
	tasks    *Scheduler

	root     *Element
	viewName string

	needsFullRedraw bool
	dirty           atomic.Bool
	fullDirty       atomic.Bool

	eventQueue chan func()
	stopCh     chan struct{}
	stopOnce   sync.Once
	stopped    atomic.Bool
	fatalErr   error

	// Configuration (set via options)
	inputLatency   time.Duration
	frameDuration  time.Duration
	eventQueueSize int
	workerLimit    int
	mouseEnabled   bool
	cursorVisible  bool
}

// NewApp creates a new application with the terminal set up for UI
// usage: raw mode, alternate screen, mouse reporting, hidden cursor.
// Pass WithTerminal/WithReader to substitute test doubles.
func NewApp(opts ...AppOption) (*App, error) {
	app := &App{
		stopCh:         make(chan struct{}),
		inputLatency:   50 * time.Millisecond,
		frameDuration:  16 * time.Millisecond, // ~60fps
		eventQueueSize: 256,
		workerLimit:    defaultWorkerLimit,
		mouseEnabled:   true,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.terminal == nil {
		terminal, err := NewANSITerminal(os.Stdout, os.Stdin)
		if err != nil {
			return nil, err
		}
		app.terminal = terminal
	}

	if err := app.enterScreen(); err != nil {
		return nil, err
	}

	if app.reader == nil {
		reader, err := NewEventReader(os.Stdin)
		if err != nil {
			app.restoreScreen()
			return nil, err
		}
		app.reader = reader
	}

	width, height := app.terminal.Size()
	app.buffer = NewBuffer(width, height)
	app.renderer = NewRenderer(app.terminal)
	app.router = NewRouter()
	app.focus = NewFocusManager()
	app.overlays = NewOverlayManager()
	app.regions = NewDirtyRegions()
	app.eventQueue = make(chan func(), app.eventQueueSize)
	app.tasks = newScheduler(app.QueueUpdate, app.workerLimit)

	app.wire()

	return app, nil
}

// wire connects the managers: overlay focus trapping, modal routing,
// and focus change events.
func (a *App) wire() {
	a.overlays.OnShow(func(ov *Overlay) {
		if ov.TrapFocus {
			var order []string
			if ov.Root != nil {
				order = ov.Root.FocusOrder()
			}
			a.focus.PushScope(order)
		}
		if ov.Layer == LayerModal {
			a.router.SetModal(ov.ID)
		}
		a.markRegionDirty(ov.Bounds)
	})

	a.overlays.OnDismiss(func(ov *Overlay) {
		if ov.TrapFocus {
			a.focus.PopScope()
		}
		if ov.Layer == LayerModal {
			if next := a.overlays.ActiveModal(); next != nil {
				a.router.SetModal(next.ID)
			} else {
				a.router.ClearModal()
			}
		}
		a.tasks.Invalidate(ov.ID)
		a.router.UnregisterContext(ov.ID)
		a.markRegionDirty(ov.Bounds)
	})

	a.focus.OnChange(func(blurred, focused string) {
		if blurred != "" {
			ev := &FocusEvent{Gained: false}
			ev.SetSource(blurred)
			ev.SetContext(a.viewName)
			if el := a.findElement(blurred); el != nil && el.onBlur != nil {
				el.onBlur()
			}
			a.router.Dispatch(ev)
		}
		if focused != "" {
			ev := &FocusEvent{Gained: true}
			ev.SetSource(focused)
			ev.SetContext(a.viewName)
			if el := a.findElement(focused); el != nil && el.onFocus != nil {
				el.onFocus()
			}
			a.router.Dispatch(ev)
		}
		a.MarkDirty()
	})
}

// SetView replaces the root element tree. The previous view's handlers
// are unregistered, its overlays dismissed, and its in-flight task
// results dropped.
func (a *App) SetView(name string, root *Element) {
	if a.viewName != "" {
		a.overlays.DismissView(a.viewName)
		a.router.UnregisterContext(a.viewName)
		a.tasks.Invalidate(a.viewName)
	}

	a.viewName = name
	a.root = root
	a.needsFullRedraw = true
	a.MarkDirty()
	debug.Log("app: set view %q", name)
}

// findElement locates an element by id in the root tree or any overlay.
func (a *App) findElement(id string) *Element {
	if a.root != nil {
		if el := a.root.Find(id); el != nil {
			return el
		}
	}
	for _, ov := range a.overlays.PaintOrder() {
		if ov.Root == nil {
			continue
		}
		if el := ov.Root.Find(id); el != nil {
			return el
		}
	}
	return nil
}

// Root returns the current root element.
func (a *App) Root() *Element {
	return a.root
}

// ViewName returns the active view's name.
func (a *App) ViewName() string {
	return a.viewName
}

// Router returns the event router for handler registration.
func (a *App) Router() *Router {
	return a.router
}

// Focus returns the focus manager.
func (a *App) Focus() *FocusManager {
	return a.focus
}

// FocusNext moves focus to the next focusable element.
func (a *App) FocusNext() {
	a.focus.Next()
}

// FocusPrev moves focus to the previous focusable element.
func (a *App) FocusPrev() {
	a.focus.Prev()
}

// Overlays returns the overlay manager.
func (a *App) Overlays() *OverlayManager {
	return a.overlays
}

// ShowOverlay shows an overlay owned by the active view and returns
// its id.
func (a *App) ShowOverlay(ov *Overlay) string {
	if ov.OwnerView == "" {
		ov.OwnerView = a.viewName
	}
	return a.overlays.Show(ov)
}

// DismissOverlay dismisses an overlay by id.
func (a *App) DismissOverlay(id string) bool {
	return a.overlays.Dismiss(id)
}

// Scheduler returns the background task scheduler.
func (a *App) Scheduler() *Scheduler {
	return a.tasks
}

// Terminal returns the underlying terminal.
// Use with caution for advanced use cases.
func (a *App) Terminal() Terminal {
	return a.terminal
}

// Buffer returns the underlying buffer.
// Use with caution for advanced use cases.
func (a *App) Buffer() *Buffer {
	return a.buffer
}

// Size returns the current terminal size.
func (a *App) Size() (width, height int) {
	return a.terminal.Size()
}

// PollEvent reads the next event with a timeout.
// Convenience wrapper around the EventReader.
func (a *App) PollEvent(timeout time.Duration) (Event, bool) {
	return a.reader.PollEvent(timeout)
}
