package pressure_test

import (
	"math"
	"testing"

	"github.com/openwaterhealth/lifu-hydrophone/internal/testutil"
	"github.com/openwaterhealth/lifu-hydrophone/measure/pressure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSine(t *testing.T) {
	const (
		fs   = 20e6
		freq = 1e6
		amp  = 1e6 // 1 MPa
		n    = 2000
	)
	p := testutil.DeterministicSine(freq, fs, amp, n)

	m, err := pressure.Analyze(p, 1/fs, pressure.WithCenterFrequency(freq))
	require.NoError(t, err)

	assert.Equal(t, n, m.Samples)
	assert.InDelta(t, n/fs, m.Duration, 1e-15)
	assert.InEpsilon(t, amp, m.PeakPositive, 1e-9)
	assert.InEpsilon(t, amp, m.PeakNegative, 1e-9)
	assert.InEpsilon(t, 2*amp, m.PeakToPeak, 1e-9)
	assert.InEpsilon(t, amp/math.Sqrt2, m.RMS, 1e-9)
	assert.InEpsilon(t, math.Sqrt2, m.CrestFactor, 1e-9)
	assert.Equal(t, 5, m.PeakPositiveIndex)
	assert.Equal(t, 15, m.PeakNegativeIndex)

	// Integral of p^2 over the record is amp^2/2 * duration.
	assert.InEpsilon(t, amp*amp/2*m.Duration/pressure.WaterImpedance, m.PulseIntensityIntegral, 1e-9)

	require.True(t, m.HasMechanicalIndex)
	assert.InEpsilon(t, 1.0, m.MechanicalIndex, 1e-9)
}

func TestAnalyzeImpedanceScalesIntensity(t *testing.T) {
	p := testutil.ToneBurst(500e3, 10e6, 2e5, 5, 10, 400)

	water, err := pressure.Analyze(p, 1e-7)
	require.NoError(t, err)
	tissue, err := pressure.Analyze(p, 1e-7, pressure.WithImpedance(3e6))
	require.NoError(t, err)

	assert.InEpsilon(t, water.PulseIntensityIntegral/2, tissue.PulseIntensityIntegral, 1e-12)
	assert.False(t, water.HasMechanicalIndex)
	assert.Zero(t, water.MechanicalIndex)
}

func TestAnalyzeOneSidedWaveforms(t *testing.T) {
	m, err := pressure.Analyze([]float64{1, 3, 2}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.PeakPositive)
	assert.Zero(t, m.PeakNegative)
	assert.Equal(t, 2.0, m.PeakToPeak)

	m, err = pressure.Analyze([]float64{-1, -4}, 1e-6)
	require.NoError(t, err)
	assert.Zero(t, m.PeakPositive)
	assert.Equal(t, 4.0, m.PeakNegative)
	assert.Equal(t, 1, m.PeakNegativeIndex)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := pressure.Analyze(nil, 1e-6)
	assert.ErrorIs(t, err, pressure.ErrEmptySignal)

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := pressure.Analyze([]float64{1}, dt)
		assert.ErrorIs(t, err, pressure.ErrInvalidSamplingInterval)
	}

	_, err = pressure.Analyze([]float64{1}, 1e-6, pressure.WithImpedance(0))
	assert.ErrorIs(t, err, pressure.ErrInvalidOption)
	_, err = pressure.Analyze([]float64{1}, 1e-6, pressure.WithCenterFrequency(-1))
	assert.ErrorIs(t, err, pressure.ErrInvalidOption)
}

func TestMechanicalIndex(t *testing.T) {
	assert.InDelta(t, 1.9/2, pressure.MechanicalIndex(1.9e6, 4e6), 1e-12)
}

func TestPeakToPeak(t *testing.T) {
	assert.Zero(t, pressure.PeakToPeak(nil))
	assert.Equal(t, 7.0, pressure.PeakToPeak([]float64{2, -3, 4, 0}))
	assert.Zero(t, pressure.PeakToPeak([]float64{1.5}))
}
