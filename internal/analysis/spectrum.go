package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the FFT of
// series with its mean removed, so bin 0 is always zero.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, n/2)
	for i := 1; i < len(ps); i++ {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-zero bin
// of series sampled every dt seconds, with its magnitude. Flat or too-short
// series give 0, 0.
func DominantFrequency(series []float64, dt float64) (float64, float64) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if best == 0 {
		return 0, 0
	}
	return float64(best) / (float64(len(series)) * dt), ps[best]
}

// SettleFrame returns the first index from which every value of series stays
// at or below frac of its peak, or -1 if the series never settles.
func SettleFrame(series []float64, frac float64) int {
	if len(series) == 0 {
		return -1
	}
	peak := series[0]
	for _, v := range series {
		peak = max(peak, v)
	}
	limit := peak * frac

	settled := -1
	for i, v := range series {
		if v > limit {
			settled = -1
		} else if settled < 0 {
			settled = i
		}
	}
	return settled
}
