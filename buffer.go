package tela

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Buffer is a double-buffered 2D grid of cells.
// Writes go to the back buffer; the renderer computes the diff against
// the front buffer and swaps after flushing.
type Buffer struct {
	front  []Cell // Currently displayed state
	back   []Cell // State being built
	width  int
	height int

	cursorX       int
	cursorY       int
	cursorVisible bool
}

// CellChange represents a single cell that differs between front and back buffers.
type CellChange struct {
	X, Y int
	Cell Cell
}

// NewBuffer creates a new double-buffered grid of the specified dimensions.
// Both buffers are initialized with spaces and default styling.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	size := width * height
	front := make([]Cell, size)
	back := make([]Cell, size)

	blank := EmptyCell(NewStyle())
	for i := range front {
		front[i] = blank
		back[i] = blank
	}

	return &Buffer{
		front:  front,
		back:   back,
		width:  width,
		height: height,
	}
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions (width, height).
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Rect returns the buffer bounds as a Rect starting at (0, 0).
func (b *Buffer) Rect() Rect {
	return NewRect(0, 0, b.width, b.height)
}

// SetCursor moves the logical cursor. The renderer positions the real
// terminal cursor here after each flush.
func (b *Buffer) SetCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
}

// Cursor returns the logical cursor position.
func (b *Buffer) Cursor() (x, y int) {
	return b.cursorX, b.cursorY
}

// ShowCursor controls whether the terminal cursor is visible after a flush.
func (b *Buffer) ShowCursor(visible bool) {
	b.cursorVisible = visible
}

// CursorVisible reports whether the cursor should be shown.
func (b *Buffer) CursorVisible() bool {
	return b.cursorVisible
}

// idx converts (x, y) coordinates to a flat index.
// Returns -1 if out of bounds.
func (b *Buffer) idx(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.width + x
}

// Cell returns the cell at position (x, y) from the back buffer.
// Returns an empty Cell if the position is out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	idx := b.idx(x, y)
	if idx < 0 {
		return Cell{}
	}
	return b.back[idx]
}

// FrontCell returns the cell at position (x, y) from the front buffer.
func (b *Buffer) FrontCell(x, y int) Cell {
	idx := b.idx(x, y)
	if idx < 0 {
		return Cell{}
	}
	return b.front[idx]
}

// SetCell sets the cell at position (x, y) in the back buffer.
// Does nothing if the position is out of bounds.
func (b *Buffer) SetCell(x, y int, c Cell) {
	idx := b.idx(x, y)
	if idx < 0 {
		return
	}
	b.back[idx] = c
}

// SetRune sets a rune at position (x, y) with the given style.
// Wide runes store a continuation cell at x+1; overwriting either half
// of an existing wide rune clears the other half so no orphaned
// continuation cells remain.
func (b *Buffer) SetRune(x, y int, r rune, style Style) {
	b.setCluster(x, y, r, clusterWidth(string(r)), style)
}

// setCluster places a rune with a precomputed display width.
func (b *Buffer) setCluster(x, y int, r rune, width int, style Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}

	current := b.Cell(x, y)
	if current.IsContinuation() {
		b.clearWideCharAt(x, y)
	}
	if current.IsWide() && x+1 < b.width {
		b.SetCell(x+1, y, EmptyCell(NewStyle()))
	}

	// Placing a wide rune may also clobber a wide rune starting at x+1.
	if width == 2 && x+1 < b.width {
		next := b.Cell(x+1, y)
		if next.IsWide() || next.IsContinuation() {
			b.clearWideCharAt(x+1, y)
		}
	}

	// A wide rune at the last column can't fit; pad with a space.
	if width == 2 && x+1 >= b.width {
		b.SetCell(x, y, EmptyCell(style))
		return
	}

	b.SetCell(x, y, Cell{Rune: r, Style: style, Width: width})
	if width == 2 {
		b.SetCell(x+1, y, continuationCell(style))
	}
}

// clearWideCharAt clears a wide character that includes position (x, y).
// If (x, y) is a continuation cell, finds and clears the originating cell.
// If (x, y) is a wide char start, clears it and its continuation.
func (b *Buffer) clearWideCharAt(x, y int) {
	cell := b.Cell(x, y)
	blank := EmptyCell(NewStyle())

	if cell.IsContinuation() {
		if x > 0 {
			b.SetCell(x-1, y, blank)
		}
		b.SetCell(x, y, blank)
	} else if cell.IsWide() {
		b.SetCell(x, y, blank)
		if x+1 < b.width {
			b.SetCell(x+1, y, blank)
		}
	}
}

// clusterWidth returns the display width of a grapheme cluster.
// A zero-width cluster (combining marks on their own) still occupies
// one column when written standalone.
func clusterWidth(cluster string) int {
	w := uniseg.StringWidth(cluster)
	if w < 1 {
		w = 1
	}
	if w > 2 {
		w = 2
	}
	return w
}

// clusterRune returns the rune stored for a grapheme cluster. Clusters
// are stored by their first rune; multi-rune clusters (flags, ZWJ
// sequences) lose their trailing runes but keep correct width.
func clusterRune(cluster string) rune {
	for _, r := range cluster {
		return r
	}
	return ' '
}

// SetString writes a string starting at position (x, y) with the given style.
// The string is segmented into grapheme clusters so combining marks and
// emoji sequences occupy the right number of columns.
// Returns the total display width consumed. Stops at the buffer edge
// without wrapping.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	return b.SetStringClipped(x, y, s, style, b.Rect())
}

// SetStringClipped writes a string clipped to a rectangle.
// Clusters outside clipRect are not rendered.
// Returns the total display width of rendered clusters.
func (b *Buffer) SetStringClipped(x, y int, s string, style Style, clipRect Rect) int {
	clipRect = clipRect.Intersect(b.Rect())
	if y < clipRect.Y || y >= clipRect.Bottom() {
		return 0
	}

	totalWidth := 0
	curX := x

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		width := clusterWidth(cluster)

		// Skip if entirely before clip region.
		if curX+width <= clipRect.X {
			curX += width
			continue
		}
		if curX >= clipRect.Right() {
			break
		}

		// A wide cluster straddling the clip edge is dropped, not halved.
		if curX < clipRect.X || (width == 2 && curX+1 >= clipRect.Right()) {
			curX += width
			continue
		}

		b.setCluster(curX, y, clusterRune(cluster), width, style)
		curX += width
		totalWidth += width
	}

	return totalWidth
}

// StringWidth returns the display width of a string in columns.
func StringWidth(s string) int {
	total := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		total += clusterWidth(g.Str())
	}
	return total
}

// Fill fills a rectangle with the given rune and style.
// Handles wide runes, padding with a space where one doesn't fit.
func (b *Buffer) Fill(rect Rect, r rune, style Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	width := clusterWidth(string(r))

	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			if width == 2 && x+1 >= rect.Right() {
				b.SetRune(x, y, ' ', style)
				x++
			} else {
				b.setCluster(x, y, r, width, style)
				x += width
			}
		}
	}
}

// SetStringGradient writes a string with a gradient applied to the
// foreground, interpolated per cluster along the string.
// Returns the total display width consumed.
func (b *Buffer) SetStringGradient(x, y int, s string, g Gradient, baseStyle Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	type placed struct {
		cluster string
		width   int
	}
	var clusters []placed
	it := uniseg.NewGraphemes(s)
	for it.Next() {
		c := it.Str()
		clusters = append(clusters, placed{c, clusterWidth(c)})
	}
	if len(clusters) == 0 {
		return 0
	}

	totalWidth := 0
	curX := x

	for i, pc := range clusters {
		if curX >= b.width {
			break
		}
		if curX < 0 {
			curX += pc.width
			continue
		}
		if pc.width == 2 && curX+1 >= b.width {
			break
		}

		t := 0.0
		if len(clusters) > 1 {
			t = float64(i) / float64(len(clusters)-1)
		}

		style := baseStyle
		style.Fg = g.At(t)

		b.setCluster(curX, y, clusterRune(pc.cluster), pc.width, style)
		curX += pc.width
		totalWidth += pc.width
	}

	return totalWidth
}

// gradientT maps a cell position within rect to a gradient position in [0, 1].
func gradientT(g Gradient, rect Rect, x, y int) float64 {
	w := float64(rect.Width)
	h := float64(rect.Height)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	tx := float64(x-rect.X) / w
	ty := float64(y-rect.Y) / h

	switch g.Direction {
	case GradientVertical:
		return ty
	case GradientDiagonalDown:
		return (tx + ty) / 2
	case GradientDiagonalUp:
		return (tx + (1 - ty)) / 2
	default:
		return tx
	}
}

// FillGradient fills a rectangle with a gradient background.
// The gradient direction maps colors left-to-right, top-to-bottom, or
// along either diagonal.
func (b *Buffer) FillGradient(rect Rect, r rune, g Gradient, baseStyle Style) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	width := clusterWidth(string(r))

	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); {
			style := baseStyle
			style.Bg = g.At(gradientT(g, rect, x, y))

			if width == 2 && x+1 >= rect.Right() {
				b.SetRune(x, y, ' ', style)
				x++
			} else {
				b.setCluster(x, y, r, width, style)
				x += width
			}
		}
	}
}

// Clear clears the entire back buffer to spaces with default style.
func (b *Buffer) Clear() {
	b.ClearRect(b.Rect())
}

// ClearRect clears a rectangular region to spaces with default style.
// Wide runes straddling the region edge are cleared entirely.
func (b *Buffer) ClearRect(rect Rect) {
	rect = rect.Intersect(b.Rect())
	if rect.IsEmpty() {
		return
	}

	blank := EmptyCell(NewStyle())

	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			cell := b.Cell(x, y)
			if cell.IsContinuation() && x == rect.X && x > 0 {
				b.SetCell(x-1, y, blank)
			}
			if cell.IsWide() && x+1 == rect.Right() && x+1 < b.width {
				b.SetCell(x+1, y, blank)
			}
			b.SetCell(x, y, blank)
		}
	}
}

// Diff returns all cells that changed between front and back buffers.
// Cells are returned in row-major order (top-to-bottom, left-to-right)
// which optimizes terminal output by minimizing cursor moves.
func (b *Buffer) Diff() []CellChange {
	changes := make([]CellChange, 0, b.width) // Pre-allocate one row
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			if !b.back[idx].Equal(b.front[idx]) {
				changes = append(changes, CellChange{X: x, Y: y, Cell: b.back[idx]})
			}
		}
	}
	return changes
}

// Swap copies the back buffer to the front buffer.
// Call this after flushing changes to the terminal.
func (b *Buffer) Swap() {
	copy(b.front, b.back)
}

// Invalidate marks the whole front buffer stale so the next Diff
// reports every cell. Used to force a full repaint after the terminal
// state is unknown (resize, return from suspend).
func (b *Buffer) Invalidate() {
	for i := range b.front {
		b.front[i] = Cell{Rune: -1}
	}
}

// String renders the back buffer to a string for debugging.
// Each row is separated by a newline; continuation cells are skipped.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			cell := b.back[y*b.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(cell.Rune)
			}
		}
		if y < b.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the back buffer content with trailing spaces
// removed from each line.
func (b *Buffer) StringTrimmed() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		var line strings.Builder
		for x := 0; x < b.width; x++ {
			cell := b.back[y*b.width+x]
			if cell.IsContinuation() {
				continue
			}
			if cell.Rune == 0 {
				line.WriteRune(' ')
			} else {
				line.WriteRune(cell.Rune)
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		if y < b.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Resize changes the buffer dimensions, preserving content where possible.
// Content in the overlapping region is preserved; new areas are cleared.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	if width == b.width && height == b.height {
		return
	}

	newSize := width * height
	newFront := make([]Cell, newSize)
	newBack := make([]Cell, newSize)

	blank := EmptyCell(NewStyle())
	for i := range newFront {
		newFront[i] = blank
		newBack[i] = blank
	}

	copyWidth := min(width, b.width)
	copyHeight := min(height, b.height)

	for y := 0; y < copyHeight; y++ {
		for x := 0; x < copyWidth; x++ {
			oldIdx := y*b.width + x
			newIdx := y*width + x
			newFront[newIdx] = b.front[oldIdx]
			newBack[newIdx] = b.back[oldIdx]
		}
	}

	b.front = newFront
	b.back = newBack
	b.width = width
	b.height = height
}
