package tela

import (
	"testing"
	"time"
)

// newTestApp builds an app against a mock terminal and reader so the
// full constructor path (screen setup, manager wiring) is exercised
// without a real tty.
func newTestApp(t *testing.T, opts ...AppOption) (*App, *MockTerminal) {
	t.Helper()
	term := NewMockTerminal(40, 10)
	opts = append([]AppOption{
		WithTerminal(term),
		WithReader(NewMockEventReader()),
	}, opts...)
	app, err := NewApp(opts...)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	t.Cleanup(func() { app.Scheduler().Shutdown() })
	return app, term
}

func TestNewApp_EntersUIMode(t *testing.T) {
	app, term := newTestApp(t)

	if !term.IsInRawMode() {
		t.Error("terminal should be in raw mode")
	}
	if !term.IsInAltScreen() {
		t.Error("terminal should be on the alternate screen")
	}
	if !term.IsMouseEnabled() {
		t.Error("mouse reporting should be enabled")
	}
	if !term.IsCursorHidden() {
		t.Error("cursor should be hidden by default")
	}
	if app.Buffer().Width() != 40 || app.Buffer().Height() != 10 {
		t.Errorf("buffer sized %dx%d, want terminal size 40x10",
			app.Buffer().Width(), app.Buffer().Height())
	}
}

func TestNewApp_WithoutMouse(t *testing.T) {
	_, term := newTestApp(t, WithoutMouse())

	if term.IsMouseEnabled() {
		t.Error("mouse reporting should stay off with WithoutMouse")
	}
}

func TestNewApp_WithCursorVisible(t *testing.T) {
	_, term := newTestApp(t, WithCursorVisible())

	if term.IsCursorHidden() {
		t.Error("cursor should stay visible with WithCursorVisible")
	}
}

func TestNewApp_OptionValidation(t *testing.T) {
	type tc struct {
		opt AppOption
	}

	tests := map[string]tc{
		"zero frame rate":       {opt: WithFrameRate(0)},
		"negative frame rate":   {opt: WithFrameRate(-5)},
		"zero event queue size": {opt: WithEventQueueSize(0)},
		"zero worker limit":     {opt: WithWorkerLimit(0)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewApp(
				WithTerminal(NewMockTerminal(10, 5)),
				WithReader(NewMockEventReader()),
				tt.opt,
			)
			if err == nil {
				t.Error("NewApp() should reject the option")
			}
		})
	}
}

func TestApp_SetView(t *testing.T) {
	app, _ := newTestApp(t)

	root := NewElement(WithText("main"))
	app.SetView("main", root)

	if app.Root() != root {
		t.Error("Root() should return the view's element tree")
	}
	if app.ViewName() != "main" {
		t.Errorf("ViewName() = %q, want %q", app.ViewName(), "main")
	}
}

func TestApp_SetView_TearsDownPreviousView(t *testing.T) {
	app, _ := newTestApp(t)

	app.SetView("first", NewElement())

	var calls int
	app.Router().Register(EventAction, ScopeView, "first", 0, func(Event) { calls++ })
	ovID := app.ShowOverlay(&Overlay{Layer: LayerDropdown, Bounds: NewRect(0, 0, 5, 5)})

	app.SetView("second", NewElement())

	if app.Overlays().Get(ovID) != nil {
		t.Error("previous view's overlay should be dismissed")
	}

	ev := &ActionEvent{Name: "go"}
	ev.SetContext("first")
	app.Router().Dispatch(ev)
	if calls != 0 {
		t.Errorf("previous view's handler ran %d times, want 0", calls)
	}
}

func TestApp_Render_DrawsView(t *testing.T) {
	app, term := newTestApp(t)

	app.SetView("main", NewElement(WithText("hello world")))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	if got := screenText(term); got != "hello world" {
		t.Errorf("screen = %q, want %q", got, "hello world")
	}
}

func TestApp_Render_OverlayPaintsAboveView(t *testing.T) {
	app, term := newTestApp(t)

	app.SetView("main", NewElement(WithText("underneath")))
	app.ShowOverlay(&Overlay{
		Layer:  LayerDropdown,
		Bounds: NewRect(0, 0, 10, 1),
		Root:   NewElement(WithText("menu")),
	})

	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	// The overlay's text overwrites the first cells of the view's row.
	if got := screenText(term); got != "menurneath" {
		t.Errorf("screen = %q, want %q", got, "menurneath")
	}
}

func TestApp_Render_RegionScopedRepaintAfterDismiss(t *testing.T) {
	app, term := newTestApp(t)

	app.SetView("main", NewElement(WithText("abcdefghij")))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	id := app.ShowOverlay(&Overlay{
		Layer:  LayerDropdown,
		Bounds: NewRect(2, 0, 4, 1),
		Root:   NewElement(WithText("XXXX")),
	})
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if got := screenText(term); got != "abXXXXghij" {
		t.Fatalf("screen = %q with overlay, want %q", got, "abXXXXghij")
	}

	// Dismissal marks only the overlay's bounds dirty; the region-scoped
	// flush must still restore the revealed cells.
	app.DismissOverlay(id)
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if got := screenText(term); got != "abcdefghij" {
		t.Errorf("screen = %q after dismiss, want %q", got, "abcdefghij")
	}
}

func TestApp_Render_CaretDrivesCursor(t *testing.T) {
	app, term := newTestApp(t)

	input := NewElement(WithID("input"), WithFocusable(), WithWidth(Fixed(10)), WithHeight(Fixed(1)))
	input.SetCaret(3, 0)
	app.SetView("main", NewElement(WithChildren(input)))

	// The first frame seeds the focus order; the caret is honored once
	// the input actually holds focus.
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}
	app.Focus().SetFocus("input")
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	x, y := term.Cursor()
	if x != 3 || y != 0 {
		t.Errorf("cursor = (%d, %d), want caret position (3, 0)", x, y)
	}
	if term.IsCursorHidden() {
		t.Error("cursor should be shown at the focused caret")
	}
}

func TestApp_DispatchResize(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetView("main", NewElement())

	var seen *ResizeEvent
	app.Router().Register(EventResize, ScopeGlobal, "", 0, func(ev Event) {
		seen = ev.(*ResizeEvent)
	})

	app.Dispatch(&ResizeEvent{Width: 60, Height: 20})

	if app.Buffer().Width() != 60 || app.Buffer().Height() != 20 {
		t.Errorf("buffer sized %dx%d after resize, want 60x20",
			app.Buffer().Width(), app.Buffer().Height())
	}
	if seen == nil {
		t.Fatal("resize event should reach global handlers")
	}
	if seen.Context() != "main" {
		t.Errorf("resize context = %q, want %q", seen.Context(), "main")
	}
}

func TestApp_DispatchKey_TabCyclesFocus(t *testing.T) {
	app, _ := newTestApp(t)

	a := NewElement(WithID("a"), WithFocusable())
	b := NewElement(WithID("b"), WithFocusable())
	app.SetView("main", NewElement(WithChildren(a, b)))

	// Seed the focus order the way a frame would.
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if got := app.Focus().Focused(); got != "" {
		t.Fatalf("unexpected initial focus %q", got)
	}

	app.Dispatch(&KeyEvent{Key: KeyTab})
	if got := app.Focus().Focused(); got != "a" {
		t.Errorf("after Tab, focused = %q, want %q", got, "a")
	}

	app.Dispatch(&KeyEvent{Key: KeyTab})
	if got := app.Focus().Focused(); got != "b" {
		t.Errorf("after second Tab, focused = %q, want %q", got, "b")
	}

	app.Dispatch(&KeyEvent{Key: KeyTab, Mod: ModShift})
	if got := app.Focus().Focused(); got != "a" {
		t.Errorf("after Shift+Tab, focused = %q, want %q", got, "a")
	}
}

func TestApp_DispatchKey_RoutesToFocusedElement(t *testing.T) {
	type tc struct {
		cancel        bool
		wantRouterHit bool
	}

	tests := map[string]tc{
		"handler lets event through": {cancel: false, wantRouterHit: true},
		"handler cancels event":      {cancel: true, wantRouterHit: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app, _ := newTestApp(t)

			var elementHit bool
			input := NewElement(
				WithID("input"),
				WithFocusable(),
				WithOnKey(func(ev *KeyEvent) {
					elementHit = true
					if tt.cancel {
						ev.Cancel()
					}
				}),
			)
			app.SetView("main", NewElement(WithChildren(input)))
			if err := app.render(); err != nil {
				t.Fatalf("render() error: %v", err)
			}
			app.Focus().SetFocus("input")

			var routerHit bool
			app.Router().Register(EventKey, ScopeGlobal, "", 0, func(Event) { routerHit = true })

			app.Dispatch(&KeyEvent{Key: KeyRune, Rune: 'x'})

			if !elementHit {
				t.Error("focused element's key handler should run")
			}
			if routerHit != tt.wantRouterHit {
				t.Errorf("router handler ran = %v, want %v", routerHit, tt.wantRouterHit)
			}
		})
	}
}

func TestApp_DispatchKey_EscapeDismissesOverlay(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetView("main", NewElement())

	id := app.ShowOverlay(&Overlay{
		Layer:           LayerDropdown,
		Bounds:          NewRect(2, 2, 8, 3),
		DismissOnEscape: true,
	})

	app.Dispatch(&KeyEvent{Key: KeyEscape})

	if app.Overlays().Get(id) != nil {
		t.Error("Escape should dismiss the overlay")
	}
}

func TestApp_DispatchMouse_PressFocusesTarget(t *testing.T) {
	app, _ := newTestApp(t)

	button := NewElement(WithID("button"), WithFocusable(), WithWidth(Fixed(10)), WithHeight(Fixed(1)))
	app.SetView("main", NewElement(WithChildren(button)))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	app.Dispatch(&MouseEvent{Button: MouseLeft, Action: MousePress, X: 1, Y: 0})

	if got := app.Focus().Focused(); got != "button" {
		t.Errorf("focused = %q after press, want %q", got, "button")
	}
}

func TestApp_DispatchMouse_ClickRunsHandler(t *testing.T) {
	app, _ := newTestApp(t)

	var clicks int
	button := NewElement(
		WithID("button"),
		WithOnClick(func() { clicks++ }),
		WithWidth(Fixed(10)),
		WithHeight(Fixed(1)),
	)
	app.SetView("main", NewElement(WithChildren(button)))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	app.Dispatch(&MouseEvent{Button: MouseLeft, Action: MouseClick, X: 1, Y: 0, Count: 1})

	if clicks != 1 {
		t.Errorf("click handler ran %d times, want 1", clicks)
	}
}

func TestApp_DispatchMouse_ModalSwallowsOutsideInteraction(t *testing.T) {
	app, _ := newTestApp(t)

	var clicks int
	button := NewElement(
		WithID("button"),
		WithOnClick(func() { clicks++ }),
		WithWidth(Fixed(10)),
		WithHeight(Fixed(1)),
	)
	app.SetView("main", NewElement(WithChildren(button)))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	app.ShowOverlay(&Overlay{Layer: LayerModal, Bounds: NewRect(12, 3, 20, 5)})

	app.Dispatch(&MouseEvent{Button: MouseLeft, Action: MouseClick, X: 1, Y: 0, Count: 1})

	if clicks != 0 {
		t.Error("click outside the modal should not reach the view")
	}
}

func TestApp_DispatchMouse_ClickOutsideDismissesModal(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetView("main", NewElement())

	id := app.ShowOverlay(&Overlay{
		Layer:                 LayerModal,
		Bounds:                NewRect(10, 3, 20, 5),
		DismissOnClickOutside: true,
	})

	app.Dispatch(&MouseEvent{Button: MouseLeft, Action: MousePress, X: 0, Y: 0})

	if app.Overlays().Get(id) != nil {
		t.Error("press outside should dismiss the modal")
	}
}

func TestApp_ModalWiring(t *testing.T) {
	app, _ := newTestApp(t)
	app.SetView("main", NewElement())

	field := NewElement(WithID("field"), WithFocusable())
	id := app.ShowOverlay(&Overlay{
		Layer:  LayerModal,
		Bounds: NewRect(5, 2, 20, 5),
		Root:   NewElement(WithChildren(field)),
	})

	// Showing a modal traps focus in a new scope seeded from its tree.
	if got := app.Focus().ScopeDepth(); got != 2 {
		t.Fatalf("scope depth = %d while modal shown, want 2", got)
	}
	if got := app.Focus().Focused(); got != "field" {
		t.Errorf("focused = %q, want the modal's first focusable", got)
	}

	// Only the modal's handlers (and globals) receive events.
	var viewHit, modalHit bool
	app.Router().Register(EventAction, ScopeView, "main", 0, func(Event) { viewHit = true })
	app.Router().Register(EventAction, ScopeModal, id, 0, func(Event) { modalHit = true })

	ev := &ActionEvent{Name: "go"}
	ev.SetContext("main")
	app.Router().Dispatch(ev)

	if viewHit {
		t.Error("view handler should be suppressed while a modal is up")
	}
	if !modalHit {
		t.Error("modal handler should receive events")
	}

	app.DismissOverlay(id)

	if got := app.Focus().ScopeDepth(); got != 1 {
		t.Errorf("scope depth = %d after dismiss, want 1", got)
	}

	viewHit = false
	ev2 := &ActionEvent{Name: "go"}
	ev2.SetContext("main")
	app.Router().Dispatch(ev2)
	if !viewHit {
		t.Error("view handler should fire again after the modal closes")
	}
}

func TestApp_FocusChangeEmitsEvents(t *testing.T) {
	app, _ := newTestApp(t)

	var gained, lost []string
	a := NewElement(WithID("a"), WithFocusable())
	b := NewElement(WithID("b"), WithFocusable())
	app.SetView("main", NewElement(WithChildren(a, b)))
	if err := app.render(); err != nil {
		t.Fatalf("render() error: %v", err)
	}

	app.Router().Register(EventFocus, ScopeGlobal, "", 0, func(ev Event) {
		fe := ev.(*FocusEvent)
		if fe.Gained {
			gained = append(gained, fe.Source())
		} else {
			lost = append(lost, fe.Source())
		}
	})

	app.Focus().SetFocus("a")
	app.Focus().SetFocus("b")

	wantGained := []string{"a", "b"}
	wantLost := []string{"a"}
	if len(gained) != 2 || gained[0] != wantGained[0] || gained[1] != wantGained[1] {
		t.Errorf("gained = %v, want %v", gained, wantGained)
	}
	if len(lost) != 1 || lost[0] != wantLost[0] {
		t.Errorf("lost = %v, want %v", lost, wantLost)
	}
}

func TestApp_QueueUpdate(t *testing.T) {
	app, _ := newTestApp(t)

	var ran bool
	app.QueueUpdate(func() { ran = true })

	select {
	case fn := <-app.eventQueue:
		fn()
	case <-time.After(100 * time.Millisecond):
		t.Fatal("QueueUpdate did not enqueue the function")
	}

	if !ran {
		t.Error("queued function did not run")
	}
	if !app.checkAndClearDirty() {
		t.Error("a queued update should mark the UI dirty")
	}
}

func TestApp_MarkDirty_BurstCollapsesToOneRender(t *testing.T) {
	app, _ := newTestApp(t)

	app.MarkDirty()
	app.MarkDirty()
	app.MarkDirty()

	if !app.checkAndClearDirty() {
		t.Fatal("checkAndClearDirty() = false after MarkDirty burst")
	}
	if app.checkAndClearDirty() {
		t.Error("a burst of marks should be consumed by a single check")
	}
}

func TestApp_Stop_IsIdempotent(t *testing.T) {
	app, _ := newTestApp(t)

	app.Stop()
	app.Stop()

	select {
	case <-app.stopCh:
	default:
		t.Error("Stop() should close the stop channel")
	}
}

func TestApp_QueueUpdate_AfterStopIsDropped(t *testing.T) {
	app, _ := newTestApp(t)
	app.Stop()

	// Must not block even with a full queue unreachable.
	done := make(chan struct{})
	go func() {
		app.QueueUpdate(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("QueueUpdate blocked after Stop")
	}
}

func TestApp_Suspend(t *testing.T) {
	app, term := newTestApp(t)
	app.SetView("main", NewElement(WithText("content")))

	resume, err := app.Suspend()
	if err != nil {
		t.Fatalf("Suspend() error: %v", err)
	}

	if term.IsInRawMode() || term.IsInAltScreen() {
		t.Error("Suspend should restore the terminal")
	}

	if err := resume(); err != nil {
		t.Fatalf("resume error: %v", err)
	}
	if !term.IsInRawMode() || !term.IsInAltScreen() {
		t.Error("resume should re-enter UI mode")
	}
	if !app.checkAndClearDirty() {
		t.Error("resume should mark the UI dirty")
	}
}
