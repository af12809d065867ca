package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// SampleCalibration is a needle hydrophone calibration file in the vendor
// text format, trimmed to a handful of frequency points.
const SampleCalibration = `# Hydrophone calibration report
# Generated by the calibration bench

Calibration_DATE	2022-12-19
HYD_MFG	Onda
HYD_MODEL	HNR-0500
HYD_SN	2246
HYD_APERTURE_NOM_UM	500
HYD_POLARITY	Positive
WATER_TEMP_DEGC	21.8
WATER_RESISTIVITY_MOHMS-CM	17.9
AMP_MODEL	None
DATA_FIELDS	5
DATA_FIELD	FREQ_MHz
DATA_FIELD	SENS_DB
DATA_FIELD	SENS_VPERPA
DATA_FIELD	CAP_PF
DATA_FIELD	SENS_V2CM2PERW
HEADER_END
# FREQ_MHz SENS_DB SENS_VPERPA CAP_PF SENS_V2CM2PERW
0.250	-266.22	4.880e-08	118.2	3.572e-08
0.500	-265.15	5.520e-08	118.0	4.570e-08
1.000	-264.61	5.875e-08	117.9	5.177e-08
2.000	-264.03	6.280e-08	117.7	5.915e-08
5.000	-262.67	7.345e-08	117.4	8.091e-08
10.000	-261.80	8.128e-08	117.1	9.908e-08
15.000	-262.94	7.120e-08	116.9	7.603e-08
20.000	-265.03	5.600e-08	116.8	4.703e-08
`

// CalibrationText renders a calibration file with the given metadata pairs,
// declared fields, and numeric rows.
func CalibrationText(metadata [][2]string, fields []string, rows [][]float64) string {
	var b strings.Builder
	for _, kv := range metadata {
		b.WriteString(kv[0])
		b.WriteByte('\t')
		b.WriteString(kv[1])
		b.WriteByte('\n')
	}
	for _, f := range fields {
		b.WriteString("DATA_FIELD\t")
		b.WriteString(f)
		b.WriteByte('\n')
	}
	b.WriteString("HEADER_END\n")
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes content to a file named name inside a per-test temporary
// directory and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
