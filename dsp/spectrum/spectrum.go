package spectrum

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when paired slices differ in length.
var ErrLengthMismatch = errors.New("spectrum: length mismatch")

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// split copies the real and imaginary parts of in into pooled scratch.
func split(in []complex128) (re, im []float64, buf *scratchBuf) {
	re, im, buf = getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im, buf
}

// Power returns |X[k]|² for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := split(in)
	defer putScratch(buf)
	vecmath.Power(out, re, im)
	return out
}

// ScaleReal multiplies every bin of spec in place by the real gain of the
// same index. A real gain leaves the phase of each bin untouched.
func ScaleReal(spec []complex128, gain []float64) error {
	if len(spec) != len(gain) {
		return fmt.Errorf("%w: spectrum %d, gain %d", ErrLengthMismatch, len(spec), len(gain))
	}
	if len(spec) == 0 {
		return nil
	}

	re, im, buf := split(spec)
	defer putScratch(buf)
	vecmath.MulBlockInPlace(re, gain)
	vecmath.MulBlockInPlace(im, gain)

	for i := range spec {
		spec[i] = complex(re[i], im[i])
	}
	return nil
}

// BandEnergy sums |X[k]|^2 over all bins whose absolute frequency lies in
// [lowHz, highHz]. freqs holds the bin frequencies of spec, typically from
// fft.Frequencies, so negative bins are matched by magnitude.
func BandEnergy(spec []complex128, freqs []float64, lowHz, highHz float64) (float64, error) {
	if len(spec) != len(freqs) {
		return 0, fmt.Errorf("%w: spectrum %d, frequencies %d", ErrLengthMismatch, len(spec), len(freqs))
	}

	power := Power(spec)
	var sum float64
	for i, f := range freqs {
		if f < 0 {
			f = -f
		}
		if f >= lowHz && f <= highHz {
			sum += power[i]
		}
	}
	return sum, nil
}

// InterpolateLinear performs piecewise-linear interpolation at queryX.
//
// x must be strictly increasing and have the same length as y. Queries
// outside [x[0], x[len-1]] are clamped to the edge values, which is the
// behavior wanted for sampled filter responses.
func InterpolateLinear(x, y, queryX []float64) ([]float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("spectrum: interpolate requires non-empty x and y")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: interpolate x %d, y %d", ErrLengthMismatch, len(x), len(y))
	}
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return nil, fmt.Errorf("spectrum: interpolate x must be strictly increasing at index %d", i)
		}
	}

	out := make([]float64, len(queryX))
	for i, q := range queryX {
		if q <= x[0] {
			out[i] = y[0]
			continue
		}
		if q >= x[len(x)-1] {
			out[i] = y[len(y)-1]
			continue
		}

		j := sort.SearchFloat64s(x, q)
		x0, x1 := x[j-1], x[j]
		t := (q - x0) / (x1 - x0)
		out[i] = y[j-1] + t*(y[j]-y[j-1])
	}
	return out, nil
}
