// Package fft provides N-point discrete Fourier transforms for arbitrary N.
//
// Power-of-two lengths are planned directly with algo-fft. Any other length
// is computed exactly with Bluestein's chirp-z algorithm, which rewrites the
// N-point DFT as a circular convolution evaluated with a power-of-two plan.
// Very short inputs are summed directly.
// All paths use the same conventions:
//
//	X[k] = sum_n x[n] * exp(-2*pi*i*n*k/N)
//	x[n] = 1/N * sum_k X[k] * exp(+2*pi*i*n*k/N)
//
// [Frequencies] returns the bin frequencies in the usual wrap-around order:
// DC first, then ascending positive frequencies, then the negative
// frequencies.
package fft
