package tela

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"golang.org/x/time/rate"

	"github.com/telaui/tela/internal/debug"
)

// Run starts the main event loop. Blocks until Stop is called, SIGINT
// arrives, or a terminal write fails. The terminal is always restored
// before Run returns, including on a fatal error.
//
// Rendering is debounced: each frame drains the event queue, and the
// screen repaints only if something marked the UI dirty. A rate limiter
// caps the repaint frequency so event floods coalesce into single
// frames.
func Run(a *App) error {
	return a.Run()
}

// Run starts the app's main event loop.
func (a *App) Run() error {
	// Handle Ctrl+C via signal as well as via KeyCtrlC handlers.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		select {
		case <-sigCh:
			a.Stop()
		case <-a.stopCh:
		}
		signal.Stop(sigCh)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-a.stopCh
		cancel()
	}()

	go a.readInputEvents()

	// Initial paint.
	a.needsFullRedraw = true
	if err := a.render(); err != nil {
		a.fail(err)
	}

	limiter := rate.NewLimiter(rate.Every(a.frameDuration), 1)

	for !a.stopped.Load() {
		if err := limiter.Wait(ctx); err != nil {
			break // stopping
		}

		a.drainEvents()

		if a.checkAndClearDirty() {
			if err := a.render(); err != nil {
				a.fail(err)
			}
		}
	}

	a.shutdown()
	return a.fatalErr
}

// drainEvents runs queued event closures, bounded per frame so a
// producer that enqueues from its own handler can't starve rendering.
func (a *App) drainEvents() {
	for i := 0; i < a.eventQueueSize; i++ {
		select {
		case handler := <-a.eventQueue:
			handler()
		case <-a.stopCh:
			return
		default:
			return
		}
	}
}

// fail records a fatal error and stops the loop. The first error wins.
func (a *App) fail(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, ErrTerminalIO) {
		debug.Log("app: fatal terminal error: %v", err)
	}
	if a.fatalErr == nil {
		a.fatalErr = err
	}
	a.Stop()
}

// Stop signals the Run loop to exit gracefully.
// Stop is idempotent and safe to call from any goroutine.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.stopped.Store(true)
		close(a.stopCh)
	})
}

// shutdown tears down background work and restores the terminal.
func (a *App) shutdown() {
	if err := a.tasks.Shutdown(); err != nil && a.fatalErr == nil {
		a.fatalErr = err
	}
	if a.reader != nil {
		a.reader.Close()
	}
	a.restoreScreen()
}

// QueueUpdate enqueues a function to run on the UI goroutine and marks
// the UI dirty afterwards. Safe to call from any goroutine; this is the
// only way background work may touch UI state.
func (a *App) QueueUpdate(fn func()) {
	wrapped := func() {
		fn()
		a.MarkDirty()
	}
	select {
	case a.eventQueue <- wrapped:
	case <-a.stopCh:
		// App is stopping, drop the update.
	}
}
