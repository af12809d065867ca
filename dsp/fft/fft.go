package fft

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Lengths below this are evaluated as a direct DFT.
const minPlanLen = 8

// Errors returned by the transforms.
var (
	ErrInvalidLength  = errors.New("fft: length must be > 0")
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")
)

// Transform computes forward and inverse DFTs of a fixed length.
//
// A Transform owns scratch buffers and is not safe for concurrent use.
// Create one per goroutine.
type Transform struct {
	n    int
	plan *algofft.Plan[complex128] // nil for lengths below minPlanLen

	// Bluestein state, nil for power-of-two and direct lengths.
	chirp   []complex128 // exp(-i*pi*k^2/n), k in [0, n)
	kernel  []complex128 // spectrum of the conjugate chirp, length m
	scratch []complex128 // length m
}

// New creates a transform of length n.
func New(n int) (*Transform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if n < minPlanLen {
		return &Transform{n: n, scratch: make([]complex128, n)}, nil
	}

	if isPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fft: failed to create FFT plan: %w", err)
		}
		return &Transform{n: n, plan: plan}, nil
	}

	m := nextPowerOf2(2*n - 1)
	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create FFT plan: %w", err)
	}

	t := &Transform{
		n:       n,
		plan:    plan,
		chirp:   make([]complex128, n),
		kernel:  make([]complex128, m),
		scratch: make([]complex128, m),
	}

	// k^2 is reduced modulo 2n so the phase argument stays small for long inputs.
	mod := int64(2 * n)
	for k := range n {
		kk := (int64(k) * int64(k)) % mod
		phi := math.Pi * float64(kk) / float64(n)
		t.chirp[k] = complex(math.Cos(phi), -math.Sin(phi))
	}

	t.kernel[0] = conj(t.chirp[0])
	for k := 1; k < n; k++ {
		c := conj(t.chirp[k])
		t.kernel[k] = c
		t.kernel[m-k] = c
	}

	if err := plan.Forward(t.kernel, t.kernel); err != nil {
		return nil, fmt.Errorf("fft: chirp kernel FFT failed: %w", err)
	}

	return t, nil
}

// Len returns the transform length.
func (t *Transform) Len() int {
	return t.n
}

// Forward computes the unnormalized DFT of src into dst.
// dst and src may alias.
func (t *Transform) Forward(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: want %d, got dst=%d src=%d", ErrLengthMismatch, t.n, len(dst), len(src))
	}

	if t.plan == nil {
		t.direct(dst, src, -1)
		return nil
	}

	if t.chirp == nil {
		if err := t.plan.Forward(dst, src); err != nil {
			return fmt.Errorf("fft: forward FFT failed: %w", err)
		}
		return nil
	}

	return t.bluestein(dst, src)
}

// Inverse computes the normalized inverse DFT of src into dst.
// dst and src may alias.
func (t *Transform) Inverse(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("%w: want %d, got dst=%d src=%d", ErrLengthMismatch, t.n, len(dst), len(src))
	}

	if t.plan == nil {
		t.direct(dst, src, 1)
		scale := complex(1/float64(t.n), 0)
		for i := range dst {
			dst[i] *= scale
		}
		return nil
	}

	if t.chirp == nil {
		if err := t.plan.Inverse(dst, src); err != nil {
			return fmt.Errorf("fft: inverse FFT failed: %w", err)
		}
		return nil
	}

	// IDFT(x) = conj(DFT(conj(x))) / n
	for i, v := range src {
		dst[i] = conj(v)
	}

	if err := t.bluestein(dst, dst); err != nil {
		return err
	}

	scale := 1 / float64(t.n)
	for i, v := range dst {
		dst[i] = complex(real(v)*scale, -imag(v)*scale)
	}

	return nil
}

// bluestein evaluates X[k] = c[k] * sum_j (x[j]*c[j]) * conj(c[k-j]).
func (t *Transform) bluestein(dst, src []complex128) error {
	a := t.scratch
	for i := range a {
		a[i] = 0
	}
	for k, v := range src {
		a[k] = v * t.chirp[k]
	}

	if err := t.plan.Forward(a, a); err != nil {
		return fmt.Errorf("fft: forward FFT failed: %w", err)
	}

	for i := range a {
		a[i] *= t.kernel[i]
	}

	if err := t.plan.Inverse(a, a); err != nil {
		return fmt.Errorf("fft: inverse FFT failed: %w", err)
	}

	for k := range t.n {
		dst[k] = a[k] * t.chirp[k]
	}

	return nil
}

// direct evaluates the unnormalized DFT with exponent sign sign.
func (t *Transform) direct(dst, src []complex128, sign float64) {
	out := t.scratch
	for k := range t.n {
		var sum complex128
		for j, v := range src {
			phi := sign * 2 * math.Pi * float64(j*k%t.n) / float64(t.n)
			sum += v * complex(math.Cos(phi), math.Sin(phi))
		}
		out[k] = sum
	}
	copy(dst, out)
}

// Real computes the DFT of a real-valued signal.
func Real(signal []float64) ([]complex128, error) {
	t, err := New(len(signal))
	if err != nil {
		return nil, err
	}

	spec := make([]complex128, len(signal))
	for i, v := range signal {
		spec[i] = complex(v, 0)
	}

	if err := t.Forward(spec, spec); err != nil {
		return nil, err
	}

	return spec, nil
}

// Frequencies returns the frequency in Hz of each bin of an n-point DFT of
// a signal sampled every dt seconds. Bins [0, (n-1)/2] are non-negative and
// the remainder are negative, so for even n the Nyquist bin is reported as
// -1/(2*dt).
func Frequencies(n int, dt float64) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	step := 1 / (float64(n) * dt)
	positive := (n-1)/2 + 1

	for k := range n {
		if k < positive {
			out[k] = float64(k) * step
		} else {
			out[k] = float64(k-n) * step
		}
	}

	return out
}

func conj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
