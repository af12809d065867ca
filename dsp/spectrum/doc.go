// Package spectrum operates on complex spectrum bins produced by package fft.
//
// It applies real per-bin gains, measures power within a frequency band,
// resamples sampled responses onto bin frequencies and measures the amplitude
// of single tones.
package spectrum
