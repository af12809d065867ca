package hydrophone_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/openwaterhealth/lifu-hydrophone/internal/testutil"
	"github.com/openwaterhealth/lifu-hydrophone/measure/hydrophone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMetadataSummary(t *testing.T) {
	h := newHydrophone(t, testutil.SampleCalibration)
	s := h.MetadataSummary()

	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	assert.Equal(t, []string{
		"calibration_date", "manufacturer", "model", "aperture_um",
		"serial_number", "polarity", "water_temperature_degc", "water_resistivity_mohms_cm",
	}, keys)

	sn, ok := s.Get("serial_number")
	require.True(t, ok)
	assert.Equal(t, "2246", sn)
	_, ok = s.Get("AMP_MODEL")
	assert.False(t, ok)

	require.NotNil(t, s.FrequencyRangeMHz)
	assert.Equal(t, hydrophone.FrequencyRange{Min: 0.25, Max: 20, NPoints: 8}, *s.FrequencyRangeMHz)
}

func TestMetadataSummaryOnlyPresentKeys(t *testing.T) {
	src := testutil.CalibrationText([][2]string{{"HYD_SN", "17"}, {"OTHER", "x"}},
		[]string{"FREQ_MHz", "SENS_VPERPA"}, nil)
	s := newHydrophone(t, src).MetadataSummary()

	assert.Equal(t, []hydrophone.SummaryField{{Key: "serial_number", Value: "17"}}, s.Fields)
	assert.Nil(t, s.FrequencyRangeMHz)
}

func TestSummaryYAMLKeepsOrderAndStrings(t *testing.T) {
	s := newHydrophone(t, testutil.SampleCalibration).MetadataSummary()

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	text := string(out)

	assert.Less(t, strings.Index(text, "calibration_date"), strings.Index(text, "manufacturer"))
	assert.Less(t, strings.Index(text, "water_resistivity_mohms_cm"), strings.Index(text, "frequency_range_mhz"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "2246", decoded["serial_number"])
	assert.Equal(t, "Onda", decoded["manufacturer"])

	rng, ok := decoded["frequency_range_mhz"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8, rng["n_points"])
	assert.Equal(t, 0.25, rng["min"])
}

func TestSummaryJSON(t *testing.T) {
	s := newHydrophone(t, testutil.SampleCalibration).MetadataSummary()

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `{"calibration_date":"2022-12-19","manufacturer":"Onda"`))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "HNR-0500", decoded["model"])
	rng := decoded["frequency_range_mhz"].(map[string]any)
	assert.InDelta(t, 20.0, rng["max"], 0)
	assert.InDelta(t, 8.0, rng["n_points"], 0)

	empty, err := json.Marshal(hydrophone.Summary{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(empty))
}
