package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/verletsim/internal/particle"
	"github.com/san-kum/verletsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width   = 400.0
	height  = 300.0
	frameDt = 1.0 / 60
)

var _ = Describe("World", func() {
	var (
		opts  sim.Options
		world *sim.World
	)

	BeforeEach(func() {
		opts = sim.DefaultOptions()
	})

	JustBeforeEach(func() {
		world = sim.NewWorld(opts)
	})

	Describe("an empty world", func() {
		It("steps without touching anything", func() {
			st := world.Step(frameDt, width, height)
			Expect(st.Particles).To(BeZero())
			Expect(st.Cells).To(BeZero())
			Expect(st.Collide.Checks).To(BeZero())
			Expect(world.Frame()).To(Equal(1))
			Expect(world.Time()).To(BeNumerically("~", frameDt, 1e-12))
		})
	})

	Describe("spawning and clearing", func() {
		It("spawns at the requested point with a radius from the spawn range", func() {
			world.Spawn(r2.Vec{X: 120, Y: 80})

			Expect(world.Len()).To(Equal(1))
			p := world.Particles()[0]
			Expect(p.Pos).To(Equal(r2.Vec{X: 120, Y: 80}))
			Expect(p.Radius).To(BeNumerically(">=", 2))
			Expect(p.Radius).To(BeNumerically("<", 7))
			Expect(p.Speed()).To(BeNumerically("<=", 2*1.5))
		})

		It("drops a band of particles into the top strip", func() {
			world.SpawnBand(200, width)

			Expect(world.Len()).To(Equal(200))
			for _, p := range world.Particles() {
				Expect(p.Pos.X).To(BeNumerically(">=", 0))
				Expect(p.Pos.X).To(BeNumerically("<", width))
				Expect(p.Pos.Y).To(BeNumerically(">=", 0))
				Expect(p.Pos.Y).To(BeNumerically("<", opts.Spawn.Band))
			}
		})

		It("clears the population", func() {
			world.SpawnBand(50, width)
			world.Clear()

			Expect(world.Len()).To(BeZero())
			st := world.Step(frameDt, width, height)
			Expect(st.Particles).To(BeZero())
		})

		It("reports views in index order", func() {
			world.Add(particle.New(r2.Vec{X: 10, Y: 10}, r2.Vec{X: 3, Y: 4}, 2))
			world.Add(particle.New(r2.Vec{X: 40, Y: 10}, r2.Vec{}, 3))

			views := world.Views(nil)
			Expect(views).To(HaveLen(2))
			Expect(views[0].Speed).To(BeNumerically("~", 5, 1e-9))
			Expect(views[1].Radius).To(Equal(3.0))

			var order []int
			world.Range(func(i int, _ particle.View) { order = append(order, i) })
			Expect(order).To(Equal([]int{0, 1}))
		})
	})

	Describe("gravity", func() {
		It("lets a dropped particle come to rest on the floor", func() {
			world.Add(particle.New(r2.Vec{X: 100, Y: 250}, r2.Vec{}, 5))

			for range 600 {
				world.Step(frameDt, width, height)
			}

			p := world.Particles()[0]
			Expect(p.Pos.Y).To(BeNumerically("~", height-5, 0.05))
			Expect(p.Pos.X).To(BeNumerically("~", 100, 1e-9))
			Expect(p.Speed()).To(BeNumerically("<", 0.01))
		})

		It("leaves a resting particle alone when disabled", func() {
			world.SetGravity(false)
			world.Add(particle.New(r2.Vec{X: 100, Y: 100}, r2.Vec{}, 5))

			for range 60 {
				world.Step(frameDt, width, height)
			}
			Expect(world.Particles()[0].Pos).To(Equal(r2.Vec{X: 100, Y: 100}))
		})

		It("toggles", func() {
			Expect(world.Gravity()).To(BeTrue())
			world.ToggleGravity()
			Expect(world.Gravity()).To(BeFalse())
			world.ToggleGravity()
			Expect(world.Gravity()).To(BeTrue())
		})
	})

	Describe("collisions", func() {
		BeforeEach(func() {
			opts.Gravity = false
		})

		It("separates an overlapping pair within one frame", func() {
			world.Add(particle.New(r2.Vec{X: 100, Y: 100}, r2.Vec{}, 5))
			world.Add(particle.New(r2.Vec{X: 103, Y: 100}, r2.Vec{}, 5))

			st := world.Step(frameDt, width, height)
			ps := world.Particles()
			Expect(r2.Norm(r2.Sub(ps[0].Pos, ps[1].Pos))).To(BeNumerically(">=", 10-1e-9))
			Expect(st.Collide.Corrections).To(BeNumerically(">=", 1))
		})

		It("keeps a dense pile finite", func() {
			opts.Gravity = true
			opts.Workers = 4
			world = sim.NewWorld(opts)
			world.SpawnBand(1500, width)

			for range 120 {
				world.Step(frameDt, width, height)
			}
			for _, p := range world.Particles() {
				Expect(p.IsValid()).To(BeTrue())
			}
		})
	})

	Describe("substeps", func() {
		BeforeEach(func() {
			opts.Substeps.Threshold = 10
		})

		It("drops to the reduced count above the threshold", func() {
			world.SpawnBand(10, width)
			Expect(world.Step(frameDt, width, height).Substeps).To(Equal(sim.DefaultSubsteps))

			world.Spawn(r2.Vec{X: 200, Y: 50})
			st := world.Step(frameDt, width, height)
			Expect(st.Substeps).To(Equal(sim.ReducedSubsteps))
			Expect(st.SubDt).To(BeNumerically("~", frameDt/sim.ReducedSubsteps, 1e-12))
		})
	})

	Describe("pointer force", func() {
		It("pushes nearby particles away from the pointer", func() {
			at := r2.Vec{X: 200, Y: 150}
			world.Add(particle.New(r2.Vec{X: 210, Y: 150}, r2.Vec{}, 3))
			world.Add(particle.New(r2.Vec{X: 200, Y: 150}, r2.Vec{}, 3))
			world.Add(particle.New(r2.Vec{X: 200, Y: 300 - 5}, r2.Vec{}, 3))

			Expect(world.ApplyPointerForce(at)).To(Equal(1))

			ps := world.Particles()
			want := opts.Pointer.Scale * opts.Pointer.Force / 10
			Expect(ps[0].Force.X).To(BeNumerically("~", want, 1e-9))
			Expect(ps[0].Force.Y).To(BeNumerically("~", 0, 1e-9))
			Expect(ps[1].Force).To(Equal(r2.Vec{}))
			Expect(ps[2].Force).To(Equal(r2.Vec{}))
		})
	})

	Describe("calm", func() {
		It("zeroes every implicit velocity", func() {
			world.SpawnBand(100, width)
			world.Step(frameDt, width, height)
			world.CalmAll()

			for _, p := range world.Particles() {
				Expect(p.Speed()).To(BeZero())
			}
			Expect(world.Summarize().KineticEnergy).To(BeZero())
		})
	})

	Describe("wind", func() {
		BeforeEach(func() {
			opts.Gravity = false
			opts.Wind.Enabled = true
		})

		It("moves a resting particle", func() {
			world.Add(particle.New(r2.Vec{X: 200, Y: 150}, r2.Vec{}, 4))
			world.Step(frameDt, width, height)
			Expect(world.Particles()[0].Pos).NotTo(Equal(r2.Vec{X: 200, Y: 150}))
		})

		It("does nothing once switched off", func() {
			world.SetWind(false)
			world.Add(particle.New(r2.Vec{X: 200, Y: 150}, r2.Vec{}, 4))
			world.Step(frameDt, width, height)
			Expect(world.Particles()[0].Pos).To(Equal(r2.Vec{X: 200, Y: 150}))
		})
	})
})
