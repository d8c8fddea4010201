// Package analysis inspects finished runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectral content of a frame
//     series such as kinetic energy, via an FFT
//   - [SettleFrame]: first frame after which a series stays below a fraction
//     of its peak
//   - [Portrait]: scatter of the population in a chosen pair of axes
//
// # Bounce frequency
//
// A population dropped under gravity rings at the rate its pile bounces:
//
//	frames, summary, _ := store.LoadFrames(id)
//	energy := make([]float64, len(summary))
//	for i, s := range summary {
//	    energy[i] = s.KineticEnergy
//	}
//	hz, _ := analysis.DominantFrequency(energy, meta.FrameDt)
package analysis
