package hydrophone

import (
	"fmt"
	"math"

	"github.com/openwaterhealth/lifu-hydrophone/dsp/fft"
	"github.com/openwaterhealth/lifu-hydrophone/dsp/filter/biquad"
	"github.com/openwaterhealth/lifu-hydrophone/dsp/filter/design/pass"
	"github.com/openwaterhealth/lifu-hydrophone/dsp/spectrum"
)

const (
	defaultFilterOrder = 4
	// Upper band edges are kept this fraction of Nyquist away from it so the
	// bilinear prewarp stays finite.
	maxEdgeFraction = 0.999
)

type deconvConfig struct {
	bandpass   bool
	centerHz   float64
	bandwidth  float64
	order      int
	gridPoints int

	// filterSet records WithFilterOrder or WithGridResponse, which need a
	// bandpass to act on.
	filterSet bool
}

// DeconvOption configures [Hydrophone.Deconvolve].
type DeconvOption func(*deconvConfig)

// WithBandpass applies a Butterworth bandpass centred on centerHz whose
// edges are centerHz*(1 -/+ bandwidthFraction/2). A bandwidthFraction of 1
// spans half to one and a half times the centre frequency.
func WithBandpass(centerHz, bandwidthFraction float64) DeconvOption {
	return func(c *deconvConfig) {
		c.bandpass = true
		c.centerHz = centerHz
		c.bandwidth = bandwidthFraction
	}
}

// WithFilterOrder sets the prototype order of the bandpass. Defaults to 4.
// It requires [WithBandpass]; on its own Deconvolve rejects it with
// [ErrInvalidBandpass].
func WithFilterOrder(order int) DeconvOption {
	return func(c *deconvConfig) {
		c.order = order
		c.filterSet = true
	}
}

// WithGridResponse evaluates the bandpass response of the designed biquad
// cascade on points equally spaced frequencies in [0, Nyquist) and
// interpolates it at the bin frequencies. By default the closed-form
// magnitude is evaluated at every bin. Like [WithFilterOrder] it requires
// [WithBandpass].
func WithGridResponse(points int) DeconvOption {
	return func(c *deconvConfig) {
		c.gridPoints = points
		c.filterSet = true
	}
}

// band holds validated bandpass edges.
type band struct {
	lowHz, highHz float64
	order         int
	sampleRate    float64
}

func (c deconvConfig) passband(sampleRate float64) (*band, error) {
	if !c.bandpass {
		if c.filterSet {
			return nil, fmt.Errorf("%w: filter order or grid response given without a bandpass", ErrInvalidBandpass)
		}
		return nil, nil
	}
	if !isPositiveFinite(c.centerHz) || !isPositiveFinite(c.bandwidth) {
		return nil, fmt.Errorf("%w: centre %v Hz, bandwidth %v", ErrInvalidBandpass, c.centerHz, c.bandwidth)
	}
	if c.order <= 0 {
		return nil, fmt.Errorf("%w: order %d", ErrInvalidBandpass, c.order)
	}
	if c.gridPoints < 0 {
		return nil, fmt.Errorf("%w: %d grid points", ErrInvalidBandpass, c.gridPoints)
	}

	nyquist := sampleRate / 2
	low := c.centerHz * (1 - c.bandwidth/2)
	high := min(c.centerHz*(1+c.bandwidth/2), maxEdgeFraction*nyquist)
	if low <= 0 {
		return nil, fmt.Errorf("%w: low edge %v Hz is not above DC", ErrInvalidBandpass, low)
	}
	if low >= high {
		return nil, fmt.Errorf("%w: empty passband [%v, %v] Hz below Nyquist %v Hz", ErrInvalidBandpass, low, high, nyquist)
	}
	return &band{lowHz: low, highHz: high, order: c.order, sampleRate: sampleRate}, nil
}

// Deconvolve converts a voltage trace sampled every samplingInterval seconds
// into pressure in pascals.
//
// The trace is transformed with an N-point DFT, each bin is scaled by the
// sensitivity at the absolute bin frequency, and the result is transformed
// back; the real part is returned. The DC bin uses the sensitivity at the
// lowest calibrated frequency. Sensitivity is applied as a real gain, so
// phase is left unchanged. With [WithBandpass] the filter magnitude is
// folded into the same gain.
func (h *Hydrophone) Deconvolve(voltage []float64, samplingInterval float64, opts ...DeconvOption) ([]float64, error) {
	model, err := h.available()
	if err != nil {
		return nil, err
	}
	if len(voltage) == 0 {
		return nil, ErrEmptySignal
	}
	if !isPositiveFinite(samplingInterval) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSamplingInterval, samplingInterval)
	}

	cfg := deconvConfig{bandwidth: 1, order: defaultFilterOrder}
	for _, opt := range opts {
		opt(&cfg)
	}
	sampleRate := 1 / samplingInterval
	bp, err := cfg.passband(sampleRate)
	if err != nil {
		return nil, err
	}

	n := len(voltage)
	freqs := fft.Frequencies(n, samplingInterval)
	gain := sensitivityGain(model, freqs)
	if bp != nil {
		filter, err := bp.magnitudes(freqs, cfg.gridPoints)
		if err != nil {
			return nil, err
		}
		for i := range gain {
			gain[i] *= filter[i]
		}
	}

	spec, err := fft.Real(voltage)
	if err != nil {
		return nil, fmt.Errorf("hydrophone: %w", err)
	}
	if err := spectrum.ScaleReal(spec, gain); err != nil {
		return nil, fmt.Errorf("hydrophone: %w", err)
	}

	t, err := fft.New(n)
	if err != nil {
		return nil, fmt.Errorf("hydrophone: %w", err)
	}
	if err := t.Inverse(spec, spec); err != nil {
		return nil, fmt.Errorf("hydrophone: %w", err)
	}

	out := make([]float64, n)
	for i, c := range spec {
		out[i] = real(c)
	}
	return out, nil
}

// sensitivityGain returns the Pa/V gain of every bin. The gain depends on
// |f| only, so it is even in frequency.
func sensitivityGain(m *Available, freqs []float64) []float64 {
	dc := m.PaPerV(m.MinFrequencyHz())
	gain := make([]float64, len(freqs))
	for i, f := range freqs {
		if f == 0 {
			gain[i] = dc
			continue
		}
		gain[i] = m.PaPerV(math.Abs(f))
	}
	return gain
}

// magnitudes returns the bandpass magnitude at |f| for each bin frequency.
func (b *band) magnitudes(freqs []float64, gridPoints int) ([]float64, error) {
	if gridPoints > 0 {
		return b.gridMagnitudes(freqs, gridPoints)
	}

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		m, err := pass.ButterworthBandpassMagnitude(f, b.lowHz, b.highHz, b.order, b.sampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBandpass, err)
		}
		out[i] = m
	}
	return out, nil
}

func (b *band) gridMagnitudes(freqs []float64, points int) ([]float64, error) {
	coeffs, err := pass.ButterworthBandpass(b.lowHz, b.highHz, b.order, b.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBandpass, err)
	}
	gridHz := make([]float64, points)
	step := b.sampleRate / 2 / float64(points)
	for i := range gridHz {
		gridHz[i] = float64(i) * step
	}
	gridMag := biquad.NewChain(coeffs).MagnitudeResponse(gridHz, b.sampleRate)

	abs := make([]float64, len(freqs))
	for i, f := range freqs {
		abs[i] = math.Abs(f)
	}
	out, err := spectrum.InterpolateLinear(gridHz, gridMag, abs)
	if err != nil {
		return nil, fmt.Errorf("hydrophone: %w", err)
	}
	return out, nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
