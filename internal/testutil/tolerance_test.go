package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1.0, 2.0, 3.0}, []float64{1.0, 2.1, 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.1, d, 1e-15)

	_, err = MaxAbsDiff([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestRelativeRMSError(t *testing.T) {
	want := []float64{1, -1, 1, -1}
	got := []float64{1.1, -1.1, 1.1, -1.1}
	e, err := RelativeRMSError(got, want)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, e, 1e-12)

	_, err = RelativeRMSError(got, make([]float64, 4))
	assert.Error(t, err)
	_, err = RelativeRMSError(got, want[:2])
	assert.Error(t, err)
}
