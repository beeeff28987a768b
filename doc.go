// Package tela is a terminal rendering-and-interaction engine.
//
// It provides the systems core of a terminal UI: a constraint-based
// layout solver, a double-buffered cell grid with diff-based flushing,
// an ANSI/mouse input decoder, and an event-routing layer unifying
// hit-testing, focus traversal, and overlay stacking. Higher layers
// (templating, widgets, theming) build on this package; tela itself
// only reads raw bytes from the terminal and writes ANSI command
// streams back.
package tela
