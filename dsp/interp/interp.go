package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by NewLinear.
var (
	ErrEmpty          = errors.New("interp: no points")
	ErrLengthMismatch = errors.New("interp: x and y length mismatch")
	ErrNonFinite      = errors.New("interp: non-finite point")
	ErrDuplicateX     = errors.New("interp: duplicate x")
)

// Linear is an immutable piecewise-linear interpolant y(x).
//
// It is safe for concurrent use.
type Linear struct {
	x, y  []float64
	slope []float64 // slope[i] is the slope of segment [x[i], x[i+1]]
}

// NewLinear builds an interpolant through the points (x[i], y[i]).
//
// The points need not be sorted; they are copied and ordered by x. Duplicate
// x values are rejected since they make the curve ambiguous. A single point
// yields a constant function.
func NewLinear(x, y []float64) (*Linear, error) {
	if len(x) == 0 {
		return nil, ErrEmpty
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	idx := make([]int, len(x))
	for i := range idx {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("%w: index %d (%v, %v)", ErrNonFinite, i, x[i], y[i])
		}
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	l := &Linear{
		x: make([]float64, len(x)),
		y: make([]float64, len(y)),
	}
	for i, j := range idx {
		l.x[i] = x[j]
		l.y[i] = y[j]
	}

	l.slope = make([]float64, len(l.x)-1)
	for i := range l.slope {
		dx := l.x[i+1] - l.x[i]
		if dx == 0 {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateX, l.x[i])
		}
		l.slope[i] = (l.y[i+1] - l.y[i]) / dx
	}

	return l, nil
}

// At evaluates the interpolant at q.
//
// Queries below the first point or above the last one follow the first or
// last segment. Queries exactly at a tabulated x return the tabulated y.
func (l *Linear) At(q float64) float64 {
	n := len(l.x)
	if n == 1 {
		return l.y[0]
	}

	// Index of the segment [x[i], x[i+1]] used for q.
	i := sort.SearchFloat64s(l.x, q) - 1
	switch {
	case i < 0:
		i = 0
	case i > n-2:
		i = n - 2
	}

	if q == l.x[i+1] {
		return l.y[i+1]
	}
	return l.y[i] + l.slope[i]*(q-l.x[i])
}

// Eval evaluates the interpolant at every query, preserving order.
func (l *Linear) Eval(queries []float64) []float64 {
	out := make([]float64, len(queries))
	for i, q := range queries {
		out[i] = l.At(q)
	}
	return out
}

// Contains reports whether q lies within the tabulated range.
func (l *Linear) Contains(q float64) bool {
	return q >= l.x[0] && q <= l.x[len(l.x)-1]
}

// Min returns the smallest tabulated x.
func (l *Linear) Min() float64 { return l.x[0] }

// Max returns the largest tabulated x.
func (l *Linear) Max() float64 { return l.x[len(l.x)-1] }

// Len returns the number of tabulated points.
func (l *Linear) Len() int { return len(l.x) }

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
