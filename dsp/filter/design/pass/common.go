package pass

import (
	"math"
)

// bilinearK computes the bilinear transform frequency warping factor tan(π*freq/sampleRate).
// Returns (k, true) on success, (0, false) if parameters are invalid.
func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

// butterworthPrototypePole returns the index-th left-half-plane pole of the
// normalized analog Butterworth lowpass prototype of the given order.
func butterworthPrototypePole(order, index int) complex128 {
	theta := math.Pi * float64(2*index+order+1) / (2 * float64(order))
	return complex(math.Cos(theta), math.Sin(theta))
}

// bilinearPole maps an analog pole s (prewarped, unit sample period) to the
// z-plane: z = (1+s)/(1-s).
func bilinearPole(s complex128) complex128 {
	return (1 + s) / (1 - s)
}
