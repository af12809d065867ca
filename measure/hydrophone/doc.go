// Package hydrophone converts hydrophone voltage traces to acoustic pressure
// using the hydrophone's calibration.
//
// A calibration (see package calfile) tabulates sensitivity in V/Pa against
// frequency. [NewModel] turns it into a piecewise-linear Pa/V curve over Hz;
// [Hydrophone.Deconvolve] applies that curve to the spectrum of a voltage
// trace and returns pressure in pascals.
//
// # Usage
//
//	h, err := hydrophone.Load("HNR-0500_2246.txt")
//	if err != nil {
//		return err
//	}
//	pressure, err := h.Deconvolve(volts, 1/50e6, hydrophone.WithBandpass(500e3, 1))
//
// Outside the calibrated range sensitivity is extrapolated from the nearest
// segment. Callers that care can check [Available.Calibrated].
package hydrophone
