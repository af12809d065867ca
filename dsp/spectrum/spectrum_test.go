package spectrum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPower(t *testing.T) {
	in := []complex128{complex(3, 4), complex(0, -2), 0}

	assert.InDeltaSlice(t, []float64{25, 4, 0}, Power(in), 1e-12)
	assert.Nil(t, Power(nil))
}

func TestScaleRealKeepsPhase(t *testing.T) {
	spec := []complex128{complex(1, 1), complex(-2, 0.5), complex(0, 3)}
	require.NoError(t, ScaleReal(spec, []float64{2, 0, -1}))

	assert.Equal(t, complex(2, 2), spec[0])
	assert.Equal(t, complex(0, 0), spec[1])
	assert.Equal(t, complex(0, -3), spec[2])
}

func TestScaleRealLengthMismatch(t *testing.T) {
	err := ScaleReal(make([]complex128, 3), make([]float64, 2))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestBandEnergyMatchesNegativeBins(t *testing.T) {
	spec := []complex128{1, 2, 3, 3, 2}
	freqs := []float64{0, 10, 20, -20, -10}

	e, err := BandEnergy(spec, freqs, 15, 25)
	require.NoError(t, err)
	assert.InDelta(t, 18, e, 1e-12)

	e, err = BandEnergy(spec, freqs, 0, 100)
	require.NoError(t, err)
	assert.InDelta(t, 27, e, 1e-12)

	_, err = BandEnergy(spec, freqs[:2], 0, 1)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestInterpolateLinearClamps(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{0, 10, 0}

	got, err := InterpolateLinear(x, y, []float64{-1, 0.5, 1, 1.25, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 5, 10, 7.5, 0}, got, 1e-12)
}

func TestInterpolateLinearRejectsBadGrid(t *testing.T) {
	_, err := InterpolateLinear(nil, nil, []float64{1})
	assert.Error(t, err)

	_, err = InterpolateLinear([]float64{0, 1}, []float64{0}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = InterpolateLinear([]float64{0, 0}, []float64{1, 2}, nil)
	assert.Error(t, err)
}

func TestToneAmplitude(t *testing.T) {
	const fs = 50e6
	x := make([]float64, 1000)
	for i := range x {
		ti := float64(i) / fs
		x[i] = 3*math.Sin(2*math.Pi*1e6*ti) + 0.5*math.Sin(2*math.Pi*2.5e6*ti)
	}

	a, err := ToneAmplitude(x, 1e6, fs)
	require.NoError(t, err)
	assert.InDelta(t, 3, a, 1e-9)

	a, err = ToneAmplitude(x, 2.5e6, fs)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a, 1e-9)

	a, err = ToneAmplitude(x, 6e6, fs)
	require.NoError(t, err)
	assert.InDelta(t, 0, a, 1e-9)

	a, err = ToneAmplitude(nil, 1e6, fs)
	require.NoError(t, err)
	assert.Zero(t, a)
}

func TestToneAmplitudeValidation(t *testing.T) {
	_, err := ToneAmplitude([]float64{1}, 10, 0)
	assert.Error(t, err)

	_, err = ToneAmplitude([]float64{1}, 600, 1000)
	assert.Error(t, err)

	_, err = ToneAmplitude([]float64{1}, -1, 1000)
	assert.Error(t, err)
}
