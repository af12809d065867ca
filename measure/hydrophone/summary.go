package hydrophone

import (
	"bytes"
	"encoding/json"

	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone/calfile"
	"gopkg.in/yaml.v3"
)

// Metadata keys understood by the summary.
const (
	keyCalibrationDate   = "Calibration_DATE"
	keyManufacturer      = "HYD_MFG"
	keyModel             = "HYD_MODEL"
	keyAperture          = "HYD_APERTURE_NOM_UM"
	keySerialNumber      = "HYD_SN"
	keyPolarity          = "HYD_POLARITY"
	keyWaterTemperature  = "WATER_TEMP_DEGC"
	keyWaterResistivity  = "WATER_RESISTIVITY_MOHMS-CM"
	frequencyRangeOutKey = "frequency_range_mhz"
)

var summaryNames = []struct{ in, out string }{
	{keyCalibrationDate, "calibration_date"},
	{keyManufacturer, "manufacturer"},
	{keyModel, "model"},
	{keyAperture, "aperture_um"},
	{keySerialNumber, "serial_number"},
	{keyPolarity, "polarity"},
	{keyWaterTemperature, "water_temperature_degc"},
	{keyWaterResistivity, "water_resistivity_mohms_cm"},
}

// SummaryField is one renamed metadata entry.
type SummaryField struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// FrequencyRange describes the calibrated frequencies.
type FrequencyRange struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	NPoints int     `json:"n_points" yaml:"n_points"`
}

// Summary is the human-oriented view of a calibration header.
//
// Fields keeps a fixed display order. Only keys present in the file appear.
// It encodes to YAML and JSON as a flat mapping in that order, followed by
// frequency_range_mhz when known.
type Summary struct {
	Fields            []SummaryField
	FrequencyRangeMHz *FrequencyRange
}

// Get returns the summary value stored under a renamed key such as
// "serial_number".
func (s Summary) Get(key string) (string, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// MetadataSummary returns the renamed identifying metadata and the
// calibrated frequency range.
func (h *Hydrophone) MetadataSummary() Summary {
	var s Summary
	md := h.table.Metadata
	for _, n := range summaryNames {
		if v, ok := md.Get(n.in); ok {
			s.Fields = append(s.Fields, SummaryField{Key: n.out, Value: v})
		}
	}

	if lo, hi, ok := h.table.Range(calfile.FieldFrequencyMHz); ok {
		s.FrequencyRangeMHz = &FrequencyRange{Min: lo, Max: hi, NPoints: h.table.Len()}
	}
	return s
}

// MarshalYAML encodes the summary as an ordered mapping.
func (s Summary) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range s.Fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	if s.FrequencyRangeMHz != nil {
		var rng yaml.Node
		if err := rng.Encode(s.FrequencyRangeMHz); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: frequencyRangeOutKey},
			&rng,
		)
	}
	return node, nil
}

// MarshalJSON encodes the summary as an ordered object.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
		return nil
	}

	for _, f := range s.Fields {
		if err := write(f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	if s.FrequencyRangeMHz != nil {
		if err := write(frequencyRangeOutKey, s.FrequencyRangeMHz); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
