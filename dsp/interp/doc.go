// Package interp provides interpolation over tabulated one-dimensional data.
//
// [Linear] is a piecewise-linear interpolant. Outside the tabulated range it
// extends the first or last segment linearly instead of clamping, so every
// finite query returns a finite value. Callers that care about accuracy
// outside the table should check [Linear.Contains].
package interp
