package hydrophone

import "github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone/calfile"

// Curve is one calibration column against frequency, with the axis
// description a plot needs.
type Curve struct {
	Field        string
	Label        string
	Unit         string
	LogScale     bool
	FrequencyMHz []float64
	Values       []float64
}

var curveSpecs = []Curve{
	{Field: calfile.FieldSensitivityDB, Label: "Sensitivity (dB)", Unit: "dB re 1V/µPa"},
	{Field: calfile.FieldSensitivityVPerPa, Label: "Sensitivity (Linear)", Unit: "V/Pa", LogScale: true},
	{Field: calfile.FieldCapacitancePF, Label: "Capacitance", Unit: "pF"},
	{Field: calfile.FieldSensitivityV2cm2PerW, Label: "Power Sensitivity", Unit: "V²cm²/W", LogScale: true},
}

// Curves returns the plottable calibration columns present in the table, in
// a fixed order. It returns nil when the table has no FREQ_MHz column.
func (h *Hydrophone) Curves() []Curve {
	freq, ok := h.table.Column(calfile.FieldFrequencyMHz)
	if !ok {
		return nil
	}

	var out []Curve
	for _, spec := range curveSpecs {
		values, ok := h.table.Column(spec.Field)
		if !ok {
			continue
		}
		c := spec
		c.FrequencyMHz = append([]float64(nil), freq...)
		c.Values = values
		out = append(out, c)
	}
	return out
}
