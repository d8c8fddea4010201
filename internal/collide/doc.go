// Package collide resolves overlaps between particles.
//
// Candidate pairs come from a [grid.Grid]: every pair inside one cell, plus
// every pair between a cell and its four forward neighbours
// ([grid.Forward]). Because each unordered pair of adjacent cells is reached
// from exactly one side, every candidate pair is visited exactly once per
// pass, whatever order the cells are walked in.
//
// # Resolvers
//
//   - [Resolve]: single-threaded grid pass.
//   - [Parallel]: the same pass with cells split into six colour classes that
//     never share a particle, each class fanned out over goroutines.
//   - [BruteForce]: all pairs, quadratic. Reference and benchmark baseline.
package collide
