package tela

import (
	"os"
	"os/signal"
	"syscall"
	"time"
)

// EventReader reads events from the terminal.
// It is designed for polling-based event loops.
type EventReader interface {
	// PollEvent reads the next event with a timeout.
	// Returns (event, true) if an event was read, or (nil, false) on timeout.
	// A timeout of 0 performs a non-blocking check.
	// A negative timeout blocks indefinitely.
	PollEvent(timeout time.Duration) (Event, bool)

	// Close releases resources. Must be called when done.
	Close() error
}

// stdinReader implements EventReader for a real terminal. Raw bytes go
// through the Decoder (which carries partial escape sequences between
// reads) and then the ClickSynthesizer.
type stdinReader struct {
	fd      int
	buf     []byte
	decoder *Decoder
	clicks  *ClickSynthesizer
	pending []Event
	sigCh   chan os.Signal // SIGWINCH delivery
}

// NewEventReader creates an EventReader for the given terminal input.
// The terminal should already be in raw mode.
func NewEventReader(in *os.File) (EventReader, error) {
	r := &stdinReader{
		fd:      int(in.Fd()),
		buf:     make([]byte, 256),
		decoder: NewDecoder(),
		clicks:  NewClickSynthesizer(),
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(r.sigCh, syscall.SIGWINCH)

	return r, nil
}

// PollEvent reads the next event with a timeout.
func (r *stdinReader) PollEvent(timeout time.Duration) (Event, bool) {
	if ev, ok := r.nextPending(); ok {
		return ev, true
	}

	// Resize signals win over queued input.
	select {
	case <-r.sigCh:
		w, h := getTerminalSizeForReader(r.fd)
		return &ResizeEvent{Width: w, Height: h}, true
	default:
	}

	ready, err := selectWithTimeout(r.fd, timeout)
	if err != nil {
		return nil, false
	}
	if !ready {
		// No more bytes coming soon: resolve a held escape prefix so a
		// bare Escape press isn't swallowed.
		r.enqueue(r.decoder.Flush())
		return r.nextPending()
	}

	n, err := syscall.Read(r.fd, r.buf)
	if err != nil || n == 0 {
		return nil, false
	}

	r.enqueue(r.decoder.Feed(r.buf[:n]))
	return r.nextPending()
}

// enqueue appends decoded events, running mouse events through click
// synthesis.
func (r *stdinReader) enqueue(events []Event) {
	for _, ev := range events {
		if m, ok := ev.(*MouseEvent); ok {
			r.pending = append(r.pending, r.clicks.Process(m)...)
			continue
		}
		r.pending = append(r.pending, ev)
	}
}

func (r *stdinReader) nextPending() (Event, bool) {
	if len(r.pending) == 0 {
		return nil, false
	}
	ev := r.pending[0]
	r.pending = r.pending[1:]
	return ev, true
}

// Close releases resources.
func (r *stdinReader) Close() error {
	signal.Stop(r.sigCh)
	close(r.sigCh)
	return nil
}
