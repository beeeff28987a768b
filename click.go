package tela

import "time"

const (
	// clickMaxDuration is the longest press-to-release interval that
	// still counts as a click.
	clickMaxDuration = 500 * time.Millisecond
	// clickMaxDistance is how far (in cells, per axis) the cursor may
	// drift between press and release for a click.
	clickMaxDistance = 1
	// doubleClickWindow is the longest interval between two clicks that
	// merges them into a double-click.
	doubleClickWindow = 300 * time.Millisecond
)

// ClickSynthesizer turns raw press/release mouse events into
// higher-level click and double-click events. Raw events pass through
// unchanged; synthesized events are appended after the release that
// completed them.
type ClickSynthesizer struct {
	now func() time.Time // injectable for tests

	pressButton MouseButton
	pressX      int
	pressY      int
	pressTime   time.Time
	pressed     bool

	lastClickButton MouseButton
	lastClickX      int
	lastClickY      int
	lastClickTime   time.Time
	hasLastClick    bool
}

// NewClickSynthesizer creates a click synthesizer using the wall clock.
func NewClickSynthesizer() *ClickSynthesizer {
	return &ClickSynthesizer{now: time.Now}
}

// Process inspects a mouse event and returns it along with any
// synthesized click events it completes.
func (c *ClickSynthesizer) Process(ev *MouseEvent) []Event {
	events := []Event{ev}

	switch ev.Action {
	case MousePress:
		if ev.Button == MouseWheelUp || ev.Button == MouseWheelDown {
			return events
		}
		c.pressed = true
		c.pressButton = ev.Button
		c.pressX = ev.X
		c.pressY = ev.Y
		c.pressTime = c.now()

	case MouseRelease:
		if !c.pressed {
			return events
		}
		c.pressed = false

		// X10-mode releases don't say which button went up; trust the
		// matching press.
		button := ev.Button
		if button == MouseNone {
			button = c.pressButton
		}
		if button != c.pressButton {
			return events
		}

		now := c.now()
		if now.Sub(c.pressTime) > clickMaxDuration ||
			abs(ev.X-c.pressX) > clickMaxDistance ||
			abs(ev.Y-c.pressY) > clickMaxDistance {
			return events
		}

		if c.hasLastClick &&
			c.lastClickButton == button &&
			now.Sub(c.lastClickTime) <= doubleClickWindow &&
			abs(ev.X-c.lastClickX) <= clickMaxDistance &&
			abs(ev.Y-c.lastClickY) <= clickMaxDistance {
			events = append(events, &MouseEvent{
				Button: button,
				Action: MouseDoubleClick,
				X:      ev.X,
				Y:      ev.Y,
				Count:  2,
				Mod:    ev.Mod,
			})
			// A third rapid click starts a fresh sequence.
			c.hasLastClick = false
			return events
		}

		events = append(events, &MouseEvent{
			Button: button,
			Action: MouseClick,
			X:      ev.X,
			Y:      ev.Y,
			Count:  1,
			Mod:    ev.Mod,
		})
		c.hasLastClick = true
		c.lastClickButton = button
		c.lastClickX = ev.X
		c.lastClickY = ev.Y
		c.lastClickTime = now

	case MouseDrag:
		// Dragging past the click distance cancels the pending click.
		if c.pressed &&
			(abs(ev.X-c.pressX) > clickMaxDistance || abs(ev.Y-c.pressY) > clickMaxDistance) {
			c.pressed = false
		}
	}

	return events
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
