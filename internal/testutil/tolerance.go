package testutil

import (
	"fmt"
	"math"
	"testing"

	timestats "github.com/openwaterhealth/lifu-hydrophone/stats/time"
)

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// RelativeRMSError returns rms(got-want)/rms(want).
func RelativeRMSError(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	diff := make([]float64, len(got))
	for i := range got {
		diff[i] = got[i] - want[i]
	}
	ref := timestats.RMS(want)
	if ref == 0 {
		return 0, fmt.Errorf("reference signal has zero RMS")
	}
	return timestats.RMS(diff) / ref, nil
}
