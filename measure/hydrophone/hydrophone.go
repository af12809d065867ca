package hydrophone

import (
	"errors"
	"fmt"

	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone/calfile"
)

var (
	// ErrInvalidCalibration reports calibration values that cannot form a
	// sensitivity curve: zero or non-finite sensitivity, non-finite or
	// repeated frequency.
	ErrInvalidCalibration = errors.New("hydrophone: invalid calibration")
	// ErrModelUnavailable is returned by conversions when the calibration
	// has no usable sensitivity data.
	ErrModelUnavailable = errors.New("hydrophone: sensitivity model unavailable")
	// ErrEmptySignal is returned when deconvolving an empty voltage trace.
	ErrEmptySignal = errors.New("hydrophone: empty signal")
	// ErrInvalidSamplingInterval is returned for a sampling interval that is
	// not a finite positive number.
	ErrInvalidSamplingInterval = errors.New("hydrophone: sampling interval must be finite and > 0")
	// ErrInvalidBandpass is returned for bandpass settings that leave no
	// passband between DC and Nyquist.
	ErrInvalidBandpass = errors.New("hydrophone: invalid bandpass")
)

// Hydrophone is a calibrated hydrophone. It is immutable after construction
// and safe for concurrent use.
type Hydrophone struct {
	table *calfile.Table
	model Model
}

// Load reads the calibration file at path and builds its sensitivity model.
func Load(path string) (*Hydrophone, error) {
	t, err := calfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("hydrophone: load calibration: %w", err)
	}
	return New(t)
}

// New builds a Hydrophone from a parsed calibration table. The table must not
// be modified afterwards.
func New(t *calfile.Table) (*Hydrophone, error) {
	m, err := NewModel(t)
	if err != nil {
		return nil, err
	}
	return &Hydrophone{table: t, model: m}, nil
}

// Table returns the underlying calibration table.
func (h *Hydrophone) Table() *calfile.Table { return h.table }

// Model returns the sensitivity model.
func (h *Hydrophone) Model() Model { return h.model }

func (h *Hydrophone) available() (*Available, error) {
	switch m := h.model.(type) {
	case *Available:
		return m, nil
	case Unavailable:
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, m.Reason)
	default:
		return nil, ErrModelUnavailable
	}
}

// SensitivityPaPerV returns the sensitivity in Pa/V at frequencyHz.
//
// Outside the calibrated range the nearest edge segment is extended
// linearly, which is less accurate than interpolation but never fails.
func (h *Hydrophone) SensitivityPaPerV(frequencyHz float64) (float64, error) {
	m, err := h.available()
	if err != nil {
		return 0, err
	}
	return m.PaPerV(frequencyHz), nil
}

// FrequencyResponse returns the sensitivity in Pa/V at each frequency, in
// order.
func (h *Hydrophone) FrequencyResponse(frequenciesHz []float64) ([]float64, error) {
	m, err := h.available()
	if err != nil {
		return nil, err
	}
	return m.curve.Eval(frequenciesHz), nil
}

// String describes the hydrophone by its identifying metadata.
func (h *Hydrophone) String() string {
	md := h.table.Metadata
	get := func(key string) string {
		if v, ok := md.Get(key); ok && v != "" {
			return v
		}
		return "Unknown"
	}
	return fmt.Sprintf("Hydrophone(manufacturer='%s', model='%s', serial_number='%s', aperture=%sµm)",
		get(keyManufacturer), get(keyModel), get(keySerialNumber), get(keyAperture))
}
