package spectrum

import (
	"fmt"
	"math"
)

// ToneAmplitude returns the peak amplitude of the component of x at freqHz,
// 2|X(f)|/N, using the Goertzel recurrence. Leakage is smallest when x spans
// a whole number of cycles.
func ToneAmplitude(x []float64, freqHz, sampleRate float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("spectrum: sample rate must be positive: %v", sampleRate)
	}
	if !(freqHz >= 0 && freqHz <= sampleRate/2) {
		return 0, fmt.Errorf("spectrum: tone frequency %v outside [0, %v]", freqHz, sampleRate/2)
	}
	if len(x) == 0 {
		return 0, nil
	}

	k := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	var s1, s2 float64
	for _, v := range x {
		s1, s2 = v+k*s1-s2, s1
	}
	p := s1*s1 + s2*s2 - k*s1*s2
	if p <= 0 {
		return 0, nil
	}
	return 2 * math.Sqrt(p) / float64(len(x)), nil
}
