// Package viz mounts the contour background in a terminal.
//
// The package implements the host page with the Bubble Tea framework:
//
//   - [Host]: bubbletea model acting as the renderer's scheduler, viewport and resize source
//   - [Canvas]: Braille-based dot canvas the renderer strokes into
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	T     - Cycle color themes
//	P     - Toggle status panel
//	?     - Show help overlay
//	Q     - Quit and unmount
package viz
