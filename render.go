package tela

// Renderer flushes buffer state to a terminal. Normal frames send only
// the cells that changed since the last flush; a full render repaints
// everything after the terminal state becomes unknown.
type Renderer struct {
	term Terminal
}

// NewRenderer creates a renderer targeting the given terminal.
func NewRenderer(term Terminal) *Renderer {
	return &Renderer{term: term}
}

// Render computes the diff between front and back buffers, flushes only
// the changed cells, and swaps the buffers. The flush is wrapped in a
// synchronized update block when the terminal supports it so partial
// frames never appear.
func (r *Renderer) Render(buf *Buffer) error {
	changes := buf.Diff()
	if len(changes) == 0 {
		r.placeCursor(buf)
		return nil
	}
	return r.flush(buf, changes)
}

// RenderFull forces a complete redraw of the buffer to the terminal.
//
// Use this after initial startup, a terminal resize, or recovering from
// external terminal corruption.
func (r *Renderer) RenderFull(buf *Buffer) error {
	width, height := buf.Size()
	changes := make([]CellChange, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			changes = append(changes, CellChange{X: x, Y: y, Cell: buf.Cell(x, y)})
		}
	}

	r.term.Clear()
	if len(changes) == 0 {
		return nil
	}
	return r.flush(buf, changes)
}

// RenderRegions flushes only changed cells inside the given dirty
// regions. The caller is responsible for having marked every mutated
// area dirty; changes outside the regions are swapped without being
// flushed.
func (r *Renderer) RenderRegions(buf *Buffer, dirty *DirtyRegions) error {
	if dirty.IsEmpty() {
		r.placeCursor(buf)
		return nil
	}

	all := buf.Diff()
	changes := all[:0]
	for _, ch := range all {
		if dirty.Covers(ch.X, ch.Y) {
			changes = append(changes, ch)
		}
	}
	if len(changes) == 0 {
		buf.Swap()
		r.placeCursor(buf)
		return nil
	}
	return r.flush(buf, changes)
}

func (r *Renderer) flush(buf *Buffer, changes []CellChange) error {
	sync := r.term.Caps().SyncUpdate
	if sync {
		r.term.BeginSyncUpdate()
	}
	err := r.term.Flush(changes)
	if sync {
		r.term.EndSyncUpdate()
	}
	if err != nil {
		return err
	}

	buf.Swap()
	r.placeCursor(buf)
	return nil
}

// placeCursor positions the hardware cursor after a flush so it sits at
// the focused element's caret rather than wherever the diff left it.
func (r *Renderer) placeCursor(buf *Buffer) {
	if buf.CursorVisible() {
		x, y := buf.Cursor()
		r.term.SetCursor(x, y)
		r.term.ShowCursor()
	} else {
		r.term.HideCursor()
	}
}
