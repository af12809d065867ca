package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	require.Len(t, s, 48)
	assert.InDelta(t, 0, s[0], 1e-15)
	assert.InDelta(t, 1, s[12], 1e-12)
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, DeterministicNoise(43, 1.0, 64))
	for _, v := range a {
		assert.LessOrEqual(t, math.Abs(v), 1.0)
	}
}

func TestToneBurst(t *testing.T) {
	// 4 cycles at 1 MHz sampled at 100 MHz is 400 samples.
	b := ToneBurst(1e6, 100e6, 2, 4, 100, 1000)
	require.Len(t, b, 1000)
	for i := 0; i < 100; i++ {
		assert.Zero(t, b[i])
	}
	for i := 500; i < 1000; i++ {
		assert.Zero(t, b[i])
	}
	peak := 0.0
	for _, v := range b {
		peak = math.Max(peak, math.Abs(v))
	}
	assert.InDelta(t, 2, peak, 0.1)
}

func TestScaleAdd(t *testing.T) {
	assert.Equal(t, []float64{2, 4}, Scale([]float64{1, 2}, 2))
	assert.Equal(t, []float64{2, 3, 3}, Add([]float64{1, 2, 3}, []float64{1, 1}))
}
