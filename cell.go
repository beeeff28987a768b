package tela

import (
	"github.com/mattn/go-runewidth"
)

// Cell represents a single terminal cell: a rune, its style, and the
// number of columns it occupies. Wide runes (CJK, many emoji) occupy
// two columns; the cell to their right is a continuation cell with
// Width 0 that must never be written to the terminal directly.
type Cell struct {
	Rune  rune
	Style Style
	Width int
}

// NewCell creates a cell for the given rune, computing its display width.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style, Width: runewidth.RuneWidth(r)}
}

// EmptyCell returns a blank cell with the given style.
func EmptyCell(style Style) Cell {
	return Cell{Rune: ' ', Style: style, Width: 1}
}

// continuationCell returns the placeholder stored to the right of a
// wide rune.
func continuationCell(style Style) Cell {
	return Cell{Rune: 0, Style: style, Width: 0}
}

// IsContinuation returns true if this cell is the trailing half of a
// wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// IsWide returns true if this cell's rune occupies two columns.
func (c Cell) IsWide() bool {
	return c.Width == 2
}

// Equal returns true if both cells render identically.
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune && c.Width == other.Width && c.Style.Equal(other.Style)
}
