// Package sim drives a verletsim world frame by frame.
//
// A [World] owns the particle population and runs every rendered frame as a
// number of substeps, each doing:
//
//	external forces -> integrate + wall constraints -> grid rebuild -> collisions
//
// Front-ends (terminal, window, headless runner) talk to the world only
// through its event methods: [World.Spawn], [World.SpawnBand], [World.Clear],
// [World.SetGravity], [World.ApplyPointerForce], [World.CalmAll] and
// [World.Step]. Rendering reads the population through [World.Range] or
// [World.Views].
//
// # Headless runs
//
//	w := sim.NewWorld(sim.DefaultOptions())
//	w.SpawnBand(1000, 800)
//	r := sim.NewRunner(w)
//	result, _ := r.Run(ctx, sim.RunConfig{Frames: 600, FrameDt: 1.0 / 60, Width: 800, Height: 600})
//
// # Thread Safety
//
// World is NOT thread-safe. All event methods and Step must be called from
// the goroutine that owns the frame loop.
package sim
