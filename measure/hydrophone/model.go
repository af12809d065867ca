package hydrophone

import (
	"fmt"
	"math"

	"github.com/openwaterhealth/lifu-hydrophone/dsp/interp"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone/calfile"
)

// Model is the sensitivity model built from a calibration table. It is
// either [Unavailable] or [Available]; callers switch on the concrete type.
type Model interface {
	isModel()
}

// Unavailable is the model of a calibration that cannot convert voltage to
// pressure.
type Unavailable struct {
	Reason string
}

// Available maps frequency in Hz to sensitivity in Pa/V by linear
// interpolation of the calibration points, extending the first and last
// segments outside the calibrated range.
type Available struct {
	curve *interp.Linear
}

func (Unavailable) isModel() {}
func (*Available) isModel()  {}

// PaPerV returns the sensitivity at frequencyHz.
func (a *Available) PaPerV(frequencyHz float64) float64 { return a.curve.At(frequencyHz) }

// MinFrequencyHz returns the lowest calibrated frequency.
func (a *Available) MinFrequencyHz() float64 { return a.curve.Min() }

// MaxFrequencyHz returns the highest calibrated frequency.
func (a *Available) MaxFrequencyHz() float64 { return a.curve.Max() }

// Points returns the number of calibration points.
func (a *Available) Points() int { return a.curve.Len() }

// Calibrated reports whether frequencyHz lies inside the calibrated range,
// where no extrapolation is involved.
func (a *Available) Calibrated(frequencyHz float64) bool { return a.curve.Contains(frequencyHz) }

// NewModel builds the sensitivity model of t.
//
// Tables lacking a FREQ_MHz or SENS_VPERPA column, or without rows, give
// [Unavailable]. Tables whose values cannot form a curve are rejected with
// [ErrInvalidCalibration].
func NewModel(t *calfile.Table) (Model, error) {
	freqMHz, ok := t.Column(calfile.FieldFrequencyMHz)
	if !ok {
		return Unavailable{Reason: "no " + calfile.FieldFrequencyMHz + " column"}, nil
	}
	sens, ok := t.Column(calfile.FieldSensitivityVPerPa)
	if !ok {
		return Unavailable{Reason: "no " + calfile.FieldSensitivityVPerPa + " column"}, nil
	}
	if len(freqMHz) == 0 {
		return Unavailable{Reason: "calibration table has no rows"}, nil
	}

	hz := make([]float64, len(freqMHz))
	paPerV := make([]float64, len(sens))
	for i := range freqMHz {
		if math.IsNaN(freqMHz[i]) || math.IsInf(freqMHz[i], 0) {
			return nil, fmt.Errorf("%w: row %d: frequency %v", ErrInvalidCalibration, i+1, freqMHz[i])
		}
		if sens[i] == 0 || math.IsNaN(sens[i]) || math.IsInf(sens[i], 0) {
			return nil, fmt.Errorf("%w: row %d: sensitivity %v V/Pa", ErrInvalidCalibration, i+1, sens[i])
		}
		hz[i] = freqMHz[i] * 1e6
		paPerV[i] = 1 / sens[i]
	}

	curve, err := interp.NewLinear(hz, paPerV)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCalibration, err)
	}
	return &Available{curve: curve}, nil
}
