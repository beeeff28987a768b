package layout

// Layout holds the computed position and size after a solve.
type Layout struct {
	// Rect is the border box, the space allocated by the parent after
	// applying this node's margin. Use for hit testing and bounds.
	Rect Rect

	// ContentRect is Rect minus padding, the area where children are
	// placed. Use for rendering content and positioning children.
	ContentRect Rect
}

// Node is the interface for anything that participates in layout.
// The solver works entirely with this interface; the root package's
// element type implements it.
type Node interface {
	// LayoutStyle returns the layout style properties for this node.
	LayoutStyle() Style

	// LayoutChildren returns the children to be laid out, in order.
	LayoutChildren() []Node

	// Measure reports the natural content size of a leaf node given the
	// space available to it. The solver only consults Measure on nodes
	// without children; containers derive their size from children.
	Measure(available Size) Size

	// SetLayout is called by the solver to store the computed layout.
	// The stored value is overwritten on every pass.
	SetLayout(Layout)

	// GetLayout returns the last computed layout.
	GetLayout() Layout
}

// OverflowFunc is an optional diagnostic hook invoked when the non-Fill
// children of a node request more main-axis space than is available.
// overflow is the number of cells by which the request exceeds the
// content box. The hook observes; it must not mutate the tree.
type OverflowFunc func(node Node, overflow int)
