package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates amplitude*sin(2*pi*freqHz*t) sampled at sampleRate.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// ToneBurst generates a Hann-windowed sine burst of the given number of
// cycles, starting at sample offset and zero elsewhere. It models a single
// transducer pulse as seen at the hydrophone.
func ToneBurst(freqHz, sampleRate, amplitude float64, cycles float64, offset, length int) []float64 {
	out := make([]float64, length)
	burstLen := int(math.Round(cycles * sampleRate / freqHz))
	step := 2 * math.Pi * freqHz / sampleRate
	for i := 0; i < burstLen; i++ {
		j := offset + i
		if j < 0 || j >= length {
			continue
		}
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(burstLen))
		out[j] = amplitude * w * math.Sin(step*float64(i))
	}
	return out
}

// Scale returns x multiplied by k.
func Scale(x []float64, k float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * k
	}
	return out
}

// Add returns the elementwise sum of a and b. The result has the length of a;
// missing b samples count as zero.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = v
		if i < len(b) {
			out[i] += b[i]
		}
	}
	return out
}
