// Package layout implements the constraint-based layout solver for terminal UIs.
//
// It supports row/column stacking, start/center/end/stretch cross-axis
// alignment, padding, margin, gap, and four sizing policies per axis:
// fixed cells, percentage of the parent content box, fill-remaining, and
// auto (content-sized). Types are re-exported through the root tela
// package for public consumption.
//
// The main entry point is [Calculate], which takes a [Node] tree and a
// viewport and assigns an absolute [Layout] to every node. The solve is
// two passes: a bottom-up measure pass resolving intrinsic sizes, and a
// top-down arrange pass distributing concrete cells. Calculate is a pure
// function of (tree, viewport): identical inputs produce identical
// rectangles.
package layout
