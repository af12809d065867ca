package hydrophone_test

import (
	"math"
	"testing"

	"github.com/openwaterhealth/lifu-hydrophone/dsp/fft"
	"github.com/openwaterhealth/lifu-hydrophone/dsp/spectrum"
	"github.com/openwaterhealth/lifu-hydrophone/internal/testutil"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate = 50e6
	testDt   = 1 / testRate
	// 1000 samples at 50 MHz put 2 MHz and 10 MHz on exact bins and force a
	// non power-of-two transform.
	testLen = 1000
)

// voltageFor converts a pressure tone to the voltage the hydrophone would
// produce.
func voltageFor(t *testing.T, h *hydrophone.Hydrophone, freqHz float64, pressure []float64) []float64 {
	t.Helper()
	s, err := h.SensitivityPaPerV(freqHz)
	require.NoError(t, err)
	return testutil.Scale(pressure, 1/s)
}

func TestDeconvolveRecoversSinusoid(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)

	for _, freq := range []float64{1e6, 2e6, 7.5e6} {
		want := testutil.DeterministicSine(freq, testRate, 1e5, testLen)
		volts := voltageFor(t, h, freq, want)

		got, err := h.Deconvolve(volts, testDt)
		require.NoError(t, err)
		require.Len(t, got, testLen)
		testutil.RequireFinite(t, got)

		amp, err := spectrum.ToneAmplitude(got, freq, testRate)
		require.NoError(t, err)
		assert.InEpsilon(t, 1e5, amp, 0.05, "amplitude at %v Hz", freq)

		diff, err := testutil.MaxAbsDiff(got, want)
		require.NoError(t, err)
		assert.Less(t, diff, 1e-3, "waveform at %v Hz", freq)
	}
}

func TestDeconvolvePowerOfTwoLength(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	const n = 1024
	freq := 64 * testRate / n

	want := testutil.DeterministicSine(freq, testRate, 2e5, n)
	got, err := h.Deconvolve(voltageFor(t, h, freq, want), testDt)
	require.NoError(t, err)

	rel, err := testutil.RelativeRMSError(got, want)
	require.NoError(t, err)
	assert.Less(t, rel, 1e-9)
}

func TestDeconvolveDCUsesLowestCalibratedFrequency(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	const v0 = 2e-3

	volts := make([]float64, 257)
	for i := range volts {
		volts[i] = v0
	}

	got, err := h.Deconvolve(volts, testDt)
	require.NoError(t, err)

	want := v0 / 4.880e-08
	for i, p := range got {
		require.InEpsilon(t, want, p, 1e-9, "sample %d", i)
	}
}

func TestDeconvolveLinearInInput(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	a := testutil.DeterministicNoise(1, 1e-3, 600)
	b := testutil.DeterministicNoise(2, 1e-3, 600)

	pa, err := h.Deconvolve(a, testDt)
	require.NoError(t, err)
	pb, err := h.Deconvolve(b, testDt)
	require.NoError(t, err)
	pab, err := h.Deconvolve(testutil.Add(a, b), testDt)
	require.NoError(t, err)

	diff, err := testutil.MaxAbsDiff(pab, testutil.Add(pa, pb))
	require.NoError(t, err)
	assert.Less(t, diff, 1e-6)
}

func TestDeconvolveSingleSample(t *testing.T) {
	h := twoPoint(t)
	got, err := h.Deconvolve([]float64{0.5}, 1e-8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 500, got[0], 1e-9)
}

func TestDeconvolveBandpassAttenuatesOutOfBand(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	inBand := testutil.DeterministicSine(2e6, testRate, 1e5, testLen)
	outBand := testutil.DeterministicSine(10e6, testRate, 1e5, testLen)
	volts := testutil.Add(voltageFor(t, h, 2e6, inBand), voltageFor(t, h, 10e6, outBand))
	freqs := fft.Frequencies(testLen, testDt)

	plain, err := h.Deconvolve(volts, testDt)
	require.NoError(t, err)

	for name, opts := range map[string][]hydrophone.DeconvOption{
		"analytic": {hydrophone.WithBandpass(2e6, 0.5)},
		"grid":     {hydrophone.WithBandpass(2e6, 0.5), hydrophone.WithGridResponse(4096)},
		"order 2":  {hydrophone.WithBandpass(2e6, 0.5), hydrophone.WithFilterOrder(2)},
	} {
		t.Run(name, func(t *testing.T) {
			filtered, err := h.Deconvolve(volts, testDt, opts...)
			require.NoError(t, err)
			testutil.RequireFinite(t, filtered)

			plainSpec, err := fft.Real(plain)
			require.NoError(t, err)
			filtSpec, err := fft.Real(filtered)
			require.NoError(t, err)

			plainOut, err := spectrum.BandEnergy(plainSpec, freqs, 9e6, 11e6)
			require.NoError(t, err)
			filtOut, err := spectrum.BandEnergy(filtSpec, freqs, 9e6, 11e6)
			require.NoError(t, err)
			assert.Less(t, filtOut, 1e-3*plainOut)

			amp, err := spectrum.ToneAmplitude(filtered, 2e6, testRate)
			require.NoError(t, err)
			assert.InEpsilon(t, 1e5, amp, 0.02)
		})
	}
}

func TestDeconvolveClipsHighEdgeBelowNyquist(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	volts := testutil.DeterministicNoise(3, 1e-3, 500)

	got, err := h.Deconvolve(volts, testDt, hydrophone.WithBandpass(20e6, 1))
	require.NoError(t, err)
	testutil.RequireFinite(t, got)
}

func TestDeconvolveInvalidInput(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	sig := testutil.DeterministicSine(1e6, testRate, 1e-3, 100)

	_, err := h.Deconvolve(nil, testDt)
	assert.ErrorIs(t, err, hydrophone.ErrEmptySignal)

	for _, dt := range []float64{0, -1e-8, math.NaN(), math.Inf(1)} {
		_, err := h.Deconvolve(sig, dt)
		assert.ErrorIs(t, err, hydrophone.ErrInvalidSamplingInterval, "dt=%v", dt)
	}

	bad := map[string][]hydrophone.DeconvOption{
		"zero centre":       {hydrophone.WithBandpass(0, 1)},
		"negative centre":   {hydrophone.WithBandpass(-1e6, 1)},
		"low edge at DC":    {hydrophone.WithBandpass(1e6, 2)},
		"low edge below DC": {hydrophone.WithBandpass(1e6, 3)},
		"zero bandwidth":    {hydrophone.WithBandpass(1e6, 0)},
		"above Nyquist":     {hydrophone.WithBandpass(60e6, 1)},
		"zero order":        {hydrophone.WithBandpass(1e6, 1), hydrophone.WithFilterOrder(0)},
		"negative grid":     {hydrophone.WithBandpass(1e6, 1), hydrophone.WithGridResponse(-1)},
		"nan bandwidth":     {hydrophone.WithBandpass(1e6, math.NaN())},
		"order alone":       {hydrophone.WithFilterOrder(2)},
		"grid alone":        {hydrophone.WithGridResponse(1024)},
	}
	for name, opts := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := h.Deconvolve(sig, testDt, opts...)
			assert.ErrorIs(t, err, hydrophone.ErrInvalidBandpass)
		})
	}
}

func TestDeconvolveDoesNotModifyInput(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	volts := testutil.DeterministicNoise(4, 1e-3, 300)
	orig := append([]float64(nil), volts...)

	_, err := h.Deconvolve(volts, testDt, hydrophone.WithBandpass(2e6, 1))
	require.NoError(t, err)
	assert.Equal(t, orig, volts)
}
