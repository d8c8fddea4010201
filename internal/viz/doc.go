// Package viz is the terminal front-end for a verletsim world.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the frame loop, input handling and HUD
//   - [Canvas]: Braille-based pixel canvas, coloured by particle speed
//   - [FPSMeter]: spring-smoothed frame rate readout
//   - [Recorder]: GIF capture of the canvas
//
// # Key Bindings
//
//	1     - Drop 100 particles into the top band
//	Space - Spawn one particle at the pointer
//	Click - Spawn at the pointer while the left button is held
//	P     - Push particles away from the pointer
//	G     - Toggle gravity
//	C     - Calm every particle
//	R     - Remove every particle
//	W     - Toggle wind
//	S     - Pause/Resume
//	T     - Cycle themes
//	V     - Toggle GIF recording
//	?     - Show help overlay
package viz
