// Package sim drives a diffusion sweep one radius at a time.
//
// A [Stepper] moves through four phases:
//
//	Idle --Start--> Running --Tick...--> Complete
//	Running --Pause--> Paused --Start--> Running
//	any --Reset--> Idle
//
// Ticks come from outside: the TUI calls [Stepper.Tick] from its frame
// message, headless callers use [Stepper.Run] with a [Ticker].
package sim
