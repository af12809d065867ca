// Package time computes amplitude statistics of a sampled waveform.
package time

import "math"

// Stats holds amplitude statistics of one waveform.
type Stats struct {
	Length      int
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	Peak        float64 // max(|Max|, |Min|)
	Range       float64 // Max - Min
	RMS         float64
	CrestFactor float64 // Peak / RMS, 0 for a silent signal
	Energy      float64 // sum of squares
}

// Calculate computes all statistics in a single pass. The first occurrence
// of the extreme value wins for MaxPos and MinPos.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	var (
		sumSq  float64
		maxVal = signal[0]
		maxPos int
		minVal = signal[0]
		minPos int
	)
	for i, x := range signal {
		sumSq += x * x
		if x > maxVal {
			maxVal, maxPos = x, i
		}
		if x < minVal {
			minVal, minPos = x, i
		}
	}

	s := Stats{
		Length: n,
		Max:    maxVal,
		MaxPos: maxPos,
		Min:    minVal,
		MinPos: minPos,
		Peak:   math.Max(math.Abs(maxVal), math.Abs(minVal)),
		Range:  maxVal - minVal,
		RMS:    math.Sqrt(sumSq / float64(n)),
		Energy: sumSq,
	}
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}
	return s
}

// RMS returns the root-mean-square of the signal, or 0 when it is empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}
	return math.Sqrt(sumSq / float64(len(signal)))
}
