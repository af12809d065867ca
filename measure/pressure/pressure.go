// Package pressure computes exposure metrics of an acoustic pressure
// waveform, typically the output of hydrophone deconvolution.
//
// All metrics derive from one pass of stats/time over the samples:
//
//   - PPP / PNP: peak positive and peak negative pressure
//   - peak-to-peak pressure
//   - RMS pressure and crest factor
//   - PII: pulse intensity integral, the time integral of p^2/Z
//   - MI: mechanical index, PNP in MPa over the square root of the centre
//     frequency in MHz
//
// Pressures are in pascals, the PII in J/m^2.
package pressure

import (
	"errors"
	"fmt"
	"math"

	timestats "github.com/openwaterhealth/lifu-hydrophone/stats/time"
)

// WaterImpedance is the characteristic acoustic impedance of water in Rayl
// (kg/(m^2 s)), the default for intensity metrics.
const WaterImpedance = 1.5e6

var (
	// ErrEmptySignal is returned for an empty waveform.
	ErrEmptySignal = errors.New("pressure: empty signal")
	// ErrInvalidSamplingInterval is returned for a sampling interval that is
	// not a finite positive number.
	ErrInvalidSamplingInterval = errors.New("pressure: sampling interval must be finite and > 0")
	// ErrInvalidOption is returned for a non-positive impedance or centre
	// frequency.
	ErrInvalidOption = errors.New("pressure: invalid option")
)

// Metrics holds the exposure metrics of one waveform.
type Metrics struct {
	Samples  int
	Duration float64 // seconds

	PeakPositive      float64 // Pa
	PeakPositiveIndex int
	PeakNegative      float64 // Pa, reported as a positive magnitude
	PeakNegativeIndex int
	PeakToPeak        float64 // Pa
	RMS               float64 // Pa
	CrestFactor       float64 // peak |p| over RMS

	PulseIntensityIntegral float64 // J/m^2

	// MechanicalIndex is set only when a centre frequency was supplied.
	MechanicalIndex    float64
	HasMechanicalIndex bool
}

type config struct {
	impedance float64
	centerHz  float64
}

// Option configures [Analyze].
type Option func(*config)

// WithImpedance sets the acoustic impedance used for intensity in Rayl.
// Defaults to [WaterImpedance].
func WithImpedance(rayl float64) Option {
	return func(c *config) { c.impedance = rayl }
}

// WithCenterFrequency sets the pulse centre frequency, enabling the
// mechanical index.
func WithCenterFrequency(hz float64) Option {
	return func(c *config) { c.centerHz = hz }
}

// Analyze computes the metrics of a pressure waveform sampled every
// samplingInterval seconds.
func Analyze(pressure []float64, samplingInterval float64, opts ...Option) (Metrics, error) {
	if len(pressure) == 0 {
		return Metrics{}, ErrEmptySignal
	}
	if !(samplingInterval > 0) || math.IsInf(samplingInterval, 0) {
		return Metrics{}, fmt.Errorf("%w: %v", ErrInvalidSamplingInterval, samplingInterval)
	}

	cfg := config{impedance: WaterImpedance}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !(cfg.impedance > 0) || math.IsInf(cfg.impedance, 0) {
		return Metrics{}, fmt.Errorf("%w: impedance %v Rayl", ErrInvalidOption, cfg.impedance)
	}
	if cfg.centerHz < 0 || math.IsNaN(cfg.centerHz) || math.IsInf(cfg.centerHz, 0) {
		return Metrics{}, fmt.Errorf("%w: centre frequency %v Hz", ErrInvalidOption, cfg.centerHz)
	}

	st := timestats.Calculate(pressure)
	m := Metrics{
		Samples:                st.Length,
		Duration:               float64(st.Length) * samplingInterval,
		PeakPositive:           math.Max(st.Max, 0),
		PeakPositiveIndex:      st.MaxPos,
		PeakNegative:           math.Max(-st.Min, 0),
		PeakNegativeIndex:      st.MinPos,
		PeakToPeak:             st.Range,
		RMS:                    st.RMS,
		CrestFactor:            st.CrestFactor,
		PulseIntensityIntegral: st.Energy * samplingInterval / cfg.impedance,
	}

	if cfg.centerHz > 0 {
		m.MechanicalIndex = MechanicalIndex(m.PeakNegative, cfg.centerHz)
		m.HasMechanicalIndex = true
	}
	return m, nil
}

// MechanicalIndex returns PNP[MPa] / sqrt(f[MHz]) for a peak negative
// pressure in Pa and a centre frequency in Hz.
func MechanicalIndex(peakNegativePa, centerHz float64) float64 {
	return (peakNegativePa / 1e6) / math.Sqrt(centerHz/1e6)
}

// PeakToPeak returns max(x) - min(x), or 0 for an empty slice.
func PeakToPeak(x []float64) float64 {
	return timestats.Calculate(x).Range
}
