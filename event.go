package tela

// EventKind identifies the variant of an Event.
type EventKind uint8

const (
	// EventKey is a keyboard input event.
	EventKey EventKind = iota
	// EventMouse is a mouse input event (press, release, drag, wheel,
	// or a synthesized click).
	EventMouse
	// EventResize is emitted when the terminal is resized.
	EventResize
	// EventAction is an application-defined command (button activation,
	// menu selection).
	EventAction
	// EventChange signals that a value changed (input text, selection).
	EventChange
	// EventFocus signals focus gain or loss on an element.
	EventFocus
)

var eventKindNames = [...]string{"key", "mouse", "resize", "action", "change", "focus"}

// String returns a short name for the event kind.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is the interface for all engine events.
// Concrete events embed eventMeta and are passed by pointer so a
// handler's Cancel() is visible to the dispatch loop.
type Event interface {
	// Kind identifies the event variant.
	Kind() EventKind

	// Source returns the id of the element that originated the event,
	// or "" for raw terminal input.
	Source() string

	// Context returns the view or overlay name the event belongs to,
	// or "" when not scoped.
	Context() string

	// Cancel stops further dispatch of this event.
	Cancel()

	// Cancelled reports whether a handler cancelled the event.
	Cancelled() bool

	// SetSource records the originating element id. Called by the
	// dispatcher when it resolves a raw event to a target.
	SetSource(id string)

	// SetContext records the view or overlay name the event belongs to.
	SetContext(name string)

	// isEvent is a marker method to prevent external implementations.
	isEvent()
}

// eventMeta carries the source id, context name, and cancel flag shared
// by all event variants.
type eventMeta struct {
	source    string
	context   string
	cancelled bool
}

func (m *eventMeta) Source() string   { return m.source }
func (m *eventMeta) Context() string  { return m.context }
func (m *eventMeta) Cancel()          { m.cancelled = true }
func (m *eventMeta) Cancelled() bool  { return m.cancelled }
func (m *eventMeta) isEvent()         {}

// SetSource records the originating element id. Used by the router when
// it resolves a raw input event to a target.
func (m *eventMeta) SetSource(id string) { m.source = id }

// SetContext records the view or overlay name the event belongs to.
func (m *eventMeta) SetContext(name string) { m.context = name }

// KeyEvent represents a keyboard input event.
type KeyEvent struct {
	eventMeta

	// Key is the key pressed. For printable characters, this is KeyRune.
	Key Key

	// Rune is the character for KeyRune events. Zero for special keys.
	Rune rune

	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
}

func (*KeyEvent) Kind() EventKind { return EventKey }

// IsRune returns true if this is a printable character event.
func (e *KeyEvent) IsRune() bool {
	return e.Key == KeyRune
}

// Is checks if the event matches a specific key with optional modifiers.
// Example: event.Is(KeyEnter) or event.Is(KeyRune, ModCtrl)
func (e *KeyEvent) Is(key Key, mods ...Modifier) bool {
	if e.Key != key {
		return false
	}
	if len(mods) == 0 {
		return true
	}
	var combined Modifier
	for _, m := range mods {
		combined |= m
	}
	return e.Mod == combined
}

// MouseButton represents which mouse button was involved in an event.
type MouseButton int

const (
	// MouseLeft is the left (primary) mouse button.
	MouseLeft MouseButton = iota
	// MouseMiddle is the middle mouse button (scroll wheel click).
	MouseMiddle
	// MouseRight is the right (secondary) mouse button.
	MouseRight
	// MouseWheelUp is a scroll wheel up event.
	MouseWheelUp
	// MouseWheelDown is a scroll wheel down event.
	MouseWheelDown
	// MouseNone indicates no button (used for motion events).
	MouseNone
)

// MouseAction represents the type of mouse action.
type MouseAction int

const (
	// MousePress indicates a button was pressed.
	MousePress MouseAction = iota
	// MouseRelease indicates a button was released.
	MouseRelease
	// MouseDrag indicates motion while a button is held.
	MouseDrag
	// MouseMotion indicates motion with no button held.
	MouseMotion
	// MouseClick is synthesized from a press/release pair within the
	// click distance and time thresholds. Count is 1.
	MouseClick
	// MouseDoubleClick is synthesized from two clicks on the same
	// button within the double-click window. Count is 2.
	MouseDoubleClick
)

// MouseEvent represents a mouse input event.
type MouseEvent struct {
	eventMeta

	// Button is which mouse button was involved.
	Button MouseButton
	// Action is the type of mouse action.
	Action MouseAction
	// X is the column position (0-indexed).
	X int
	// Y is the row position (0-indexed).
	Y int
	// Count is the click count for synthesized events (1 or 2), zero otherwise.
	Count int
	// Mod contains modifier flags (Ctrl, Alt, Shift).
	Mod Modifier
}

func (*MouseEvent) Kind() EventKind { return EventMouse }

// ResizeEvent is emitted when the terminal is resized.
type ResizeEvent struct {
	eventMeta

	Width  int
	Height int
}

func (*ResizeEvent) Kind() EventKind { return EventResize }

// ActionEvent is an application-defined command, typically emitted by an
// interactive element (activation, selection).
type ActionEvent struct {
	eventMeta

	// Name identifies the action ("submit", "open", ...).
	Name string
	// Payload carries optional action data.
	Payload any
}

func (*ActionEvent) Kind() EventKind { return EventAction }

// ChangeEvent signals that an element's value changed.
type ChangeEvent struct {
	eventMeta

	// Value is the new value.
	Value any
}

func (*ChangeEvent) Kind() EventKind { return EventChange }

// FocusEvent signals focus gain or loss on the source element.
type FocusEvent struct {
	eventMeta

	// Gained is true when the element received focus, false when it lost it.
	Gained bool
}

func (*FocusEvent) Kind() EventKind { return EventFocus }
