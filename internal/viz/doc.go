// Package viz provides the terminal preview for synthesized series.
//
// The preview is a Bubble Tea program with two views:
//
//   - chart: an asciigraph plot of temperature, with humidity overlaid
//   - dots: a Braille [Canvas] trace of the temperature stream
//
// # Key Bindings
//
//	Tab        - Switch between chart and dots
//	H          - Toggle the humidity overlay
//	T          - Cycle color themes
//	Left/Right - Move the sample cursor
//	Home/End   - Jump to the first or last sample
//	?          - Toggle help
//	Q          - Quit
package viz
