// Package biquad holds second-order IIR sections and their cascades.
//
// A [Coefficients] value describes one section with a0 normalized to 1. A
// [Chain] cascades sections behind an input gain; it can filter a block in
// the time domain or report its magnitude response at arbitrary frequencies,
// for example on the bins of an FFT.
//
// Bandpass designs live in dsp/filter/design/pass.
package biquad
