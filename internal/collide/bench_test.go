package collide

import (
	"math/rand"
	"testing"

	"github.com/san-kum/verletsim/internal/particle"
)

func benchParticles(n int) []particle.Particle {
	return randomParticles(rand.New(rand.NewSource(1)), n, 1600, 1600)
}

func BenchmarkResolve(b *testing.B) {
	ps := benchParticles(10000)
	g := built(ps)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(ps)
		Resolve(ps, g)
	}
}

func BenchmarkResolveParallel(b *testing.B) {
	ps := benchParticles(10000)
	g := built(ps)
	p := NewParallel(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Rebuild(ps)
		p.Resolve(ps, g)
	}
}

func BenchmarkBruteForce(b *testing.B) {
	ps := benchParticles(2000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BruteForce(ps)
	}
}
