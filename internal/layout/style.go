package layout

// Direction specifies the stacking axis for laying out children.
type Direction uint8

const (
	Row    Direction = iota // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

// Align specifies how children are positioned on the cross axis.
type Align uint8

const (
	AlignStart   Align = iota // Align to start of cross axis
	AlignCenter               // Center on cross axis
	AlignEnd                  // Align to end of cross axis
	AlignStretch              // Stretch auto-sized children to fill cross axis
)

// Style contains all layout properties for a node.
type Style struct {
	// Sizing policy, independent per axis.
	Width  SizeSpec
	Height SizeSpec

	// Container properties.
	Direction Direction
	Align     Align // Cross-axis alignment of children
	Gap       int   // Space between children along the stacking axis

	// Spacing. Padding insets the content box before children are
	// placed; margin insets this node's own box before that.
	Padding Edges
	Margin  Edges
}

// DefaultStyle returns a Style with sensible defaults.
func DefaultStyle() Style {
	return Style{
		Width:     Auto(),
		Height:    Auto(),
		Direction: Column,
		Align:     AlignStretch,
	}
}
