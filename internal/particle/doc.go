// Package particle implements the point-mass disks that make up a verletsim
// world and the position-based (Störmer-Verlet) integrator that moves them.
//
// A [Particle] carries no velocity field. Its velocity is implied by the
// difference between the current and the previous position:
//
//	v = Pos - Prev
//
// so every operation that wants to change velocity does so by moving Prev.
//
// # Example
//
//	p := particle.New(r2.Vec{X: 100, Y: 50}, r2.Vec{X: 1}, 5)
//	p.ApplyForce(r2.Vec{X: 10})
//	p.Update(1.0/240, true)
//	p.WallConstrain(800, 600)
//
// All operations mutate a single particle and never allocate.
package particle
