// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package tela

import "github.com/telaui/tela/internal/layout"

// Direction specifies the stacking axis for laying out children.
type Direction = layout.Direction

const (
	Row    = layout.Row
	Column = layout.Column
)

// Align specifies how children are aligned along the cross axis.
type Align = layout.Align

const (
	AlignStart   = layout.AlignStart
	AlignCenter  = layout.AlignCenter
	AlignEnd     = layout.AlignEnd
	AlignStretch = layout.AlignStretch
)

// SizeSpec represents a per-axis dimension policy (fixed, percent, fill, or auto).
type SizeSpec = layout.SizeSpec

// Unit specifies how a SizeSpec is interpreted.
type Unit = layout.Unit

const (
	UnitAuto    = layout.UnitAuto
	UnitFixed   = layout.UnitFixed
	UnitPercent = layout.UnitPercent
	UnitFill    = layout.UnitFill
)

// LayoutStyle holds the layout properties for a node.
type LayoutStyle = layout.Style

// Rect represents a rectangle with position and dimensions in cells.
type Rect = layout.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Size represents a width/height pair.
type Size = layout.Size

// Point represents an x/y coordinate.
type Point = layout.Point

// Layout holds the computed bounds for a node.
type Layout = layout.Layout

// LayoutNode is the interface nodes must implement for layout calculation.
type LayoutNode = layout.Node

// Fixed creates a SizeSpec with a fixed cell count.
func Fixed(n int) SizeSpec {
	return layout.Fixed(n)
}

// Percent creates a SizeSpec representing a percentage of the parent content box.
func Percent(p float64) SizeSpec {
	return layout.Percent(p)
}

// Fill creates a SizeSpec taking an equal share of the parent's remaining space.
func Fill() SizeSpec {
	return layout.Fill()
}

// Auto creates a SizeSpec that sizes to content.
func Auto() SizeSpec {
	return layout.Auto()
}

// DefaultLayoutStyle returns a LayoutStyle with default values.
func DefaultLayoutStyle() LayoutStyle {
	return layout.DefaultStyle()
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return layout.NewRect(x, y, width, height)
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n int) Edges {
	return layout.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h int) Edges {
	return layout.EdgeSymmetric(v, h)
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l int) Edges {
	return layout.EdgeTRBL(t, r, b, l)
}

// Calculate performs a layout solve on the given tree.
func Calculate(root LayoutNode, viewport Rect) {
	layout.Calculate(root, viewport)
}

// OverflowFunc is notified when children overflow their container
// during a layout solve.
type OverflowFunc = layout.OverflowFunc

// CalculateWithOverflow performs a layout solve, reporting overflow
// through the given hook.
func CalculateWithOverflow(root LayoutNode, viewport Rect, onOverflow OverflowFunc) {
	layout.CalculateWithOverflow(root, viewport, onOverflow)
}
