package tela

import (
	"fmt"
	"time"
)

// AppOption configures an App at construction.
type AppOption func(*App) error

// WithTerminal substitutes the terminal implementation.
// Used to run against a MockTerminal in tests.
func WithTerminal(t Terminal) AppOption {
	return func(a *App) error {
		a.terminal = t
		return nil
	}
}

// WithReader substitutes the event reader.
func WithReader(r EventReader) AppOption {
	return func(a *App) error {
		a.reader = r
		return nil
	}
}

// WithFrameRate caps rendering at the given frames per second.
// The default is 60.
func WithFrameRate(fps int) AppOption {
	return func(a *App) error {
		if fps <= 0 {
			return fmt.Errorf("frame rate must be positive, got %d", fps)
		}
		a.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithInputLatency sets the polling timeout for the event reader.
// Use InputLatencyBlocking to block until input arrives.
func WithInputLatency(d time.Duration) AppOption {
	return func(a *App) error {
		a.inputLatency = d
		return nil
	}
}

// WithEventQueueSize sets the capacity of the UI event queue.
func WithEventQueueSize(n int) AppOption {
	return func(a *App) error {
		if n <= 0 {
			return fmt.Errorf("event queue size must be positive, got %d", n)
		}
		a.eventQueueSize = n
		return nil
	}
}

// WithWorkerLimit bounds how many background tasks run concurrently.
func WithWorkerLimit(n int) AppOption {
	return func(a *App) error {
		if n <= 0 {
			return fmt.Errorf("worker limit must be positive, got %d", n)
		}
		a.workerLimit = n
		return nil
	}
}

// WithoutMouse disables mouse reporting.
func WithoutMouse() AppOption {
	return func(a *App) error {
		a.mouseEnabled = false
		return nil
	}
}

// WithCursorVisible keeps the terminal cursor visible. By default the
// cursor is hidden and only shown at a focused element's caret.
func WithCursorVisible() AppOption {
	return func(a *App) error {
		a.cursorVisible = true
		return nil
	}
}
