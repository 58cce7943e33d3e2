// Package physics holds the closed-form diffusion model behind the sweep.
//
// Everything here is pure:
//
//   - [GenerateRadii]: log-spaced particle radii between two bounds
//   - [DiffusionTime]: t = L²/D with L in nm and D in m²/s
//   - [ImprovementFactor]: baseline time over current time
//
// # Example
//
//	radii := physics.GenerateRadii(1, 1000)
//	t := physics.DiffusionTime(radii[100], 1e-14) // 100 s
//	fmt.Println(physics.FormatTime(t))           // "1.67 min"
package physics
