// Package viz provides the terminal front end for a diffusion sweep.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the sweep, advanced one point per frame
//   - [Canvas]: Braille-based pixel canvas for the particle comparison
//   - [Particles]: baseline and current particle with diffusion waves
//   - [RenderChart]: log-log chart of diffusion time or improvement
//   - [Form]: settings editor with range validation
//
// # Key Bindings
//
//	Space - Start/Pause the sweep
//	R     - Reset to an empty sweep
//	C     - Toggle diffusion time / improvement chart
//	E     - Edit settings
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
