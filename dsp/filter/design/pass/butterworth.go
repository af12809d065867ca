// Package pass designs passband filters as cascades of biquad sections.
package pass

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/openwaterhealth/lifu-hydrophone/dsp/filter/biquad"
)

// ErrInvalidParams is returned for band edges or orders that do not describe
// a realizable filter.
var ErrInvalidParams = errors.New("pass: invalid parameters")

// ButterworthBandpass designs a digital Butterworth bandpass with -3 dB edges
// at lowHz and highHz.
//
// order is the order of the analog lowpass prototype; the bandpass has twice
// as many poles and is returned as order biquad sections, each with one zero
// at DC and one at Nyquist. The edges are prewarped so the digital response
// hits -3 dB exactly at lowHz and highHz. The cascade is normalized to unity
// gain at the geometric (prewarped) center frequency.
func ButterworthBandpass(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 || !(lowHz < highHz) {
		return nil, ErrInvalidParams
	}
	kl, ok := bilinearK(lowHz, sampleRate)
	if !ok {
		return nil, ErrInvalidParams
	}
	kh, ok := bilinearK(highHz, sampleRate)
	if !ok {
		return nil, ErrInvalidParams
	}

	w0sq := kl * kh
	bw := kh - kl

	sections := make([]biquad.Coefficients, 0, order)
	addPair := func(z1, z2 complex128) {
		sections = append(sections, biquad.Coefficients{
			B0: 1,
			B1: 0,
			B2: -1,
			A1: -real(z1 + z2),
			A2: real(z1 * z2),
		})
	}

	// Prototype poles come in conjugate pairs (i, order-1-i); each pole of
	// the upper half maps to two bandpass poles whose conjugates come from
	// its partner, giving two biquads per pair.
	for i := 0; i < order/2; i++ {
		p := butterworthPrototypePole(order, i)
		if imag(p) < 0 {
			p = cmplx.Conj(p)
		}
		s1, s2 := lowpassToBandpass(p, w0sq, bw)
		z1 := bilinearPole(s1)
		z2 := bilinearPole(s2)
		addPair(z1, cmplx.Conj(z1))
		addPair(z2, cmplx.Conj(z2))
	}

	// Odd orders have a real prototype pole at -1 whose two bandpass poles
	// are either a conjugate pair or both real; one biquad holds both.
	if order%2 != 0 {
		s1, s2 := lowpassToBandpass(-1, w0sq, bw)
		addPair(bilinearPole(s1), bilinearPole(s2))
	}

	// Normalize to unity at the center frequency.
	f0 := sampleRate / math.Pi * math.Atan(math.Sqrt(w0sq))
	m2 := 1.0
	for i := range sections {
		m2 *= sections[i].MagnitudeSquared(f0, sampleRate)
	}
	if !(m2 > 0) || math.IsInf(m2, 0) {
		return nil, ErrInvalidParams
	}
	g := 1 / math.Sqrt(m2)
	sections[0].B0 *= g
	sections[0].B1 *= g
	sections[0].B2 *= g

	return sections, nil
}

// ButterworthBandpassMagnitude evaluates |H(f)| of the filter designed by
// [ButterworthBandpass] in closed form:
//
//	|H|^2 = 1 / (1 + x^(2*order)),  x = (W^2 - Wl*Wh) / ((Wh - Wl) * W)
//
// with W = tan(pi*f/fs). Negative frequencies are evaluated at |f|, so the
// response is even. The magnitude is 0 at DC and at Nyquist.
func ButterworthBandpassMagnitude(freqHz, lowHz, highHz float64, order int, sampleRate float64) (float64, error) {
	if order <= 0 || !(lowHz < highHz) {
		return 0, ErrInvalidParams
	}
	kl, ok := bilinearK(lowHz, sampleRate)
	if !ok {
		return 0, ErrInvalidParams
	}
	kh, ok := bilinearK(highHz, sampleRate)
	if !ok {
		return 0, ErrInvalidParams
	}

	f := math.Abs(freqHz)
	if f == 0 || f >= sampleRate/2 {
		return 0, nil
	}

	w := math.Tan(math.Pi * f / sampleRate)
	x := (w*w - kl*kh) / ((kh - kl) * w)
	return 1 / math.Sqrt(1+math.Pow(x*x, float64(order))), nil
}

// lowpassToBandpass returns the two roots of s^2 - p*bw*s + w0sq = 0, the
// bandpass poles produced by prototype pole p under s -> (s^2 + w0^2)/(bw*s).
func lowpassToBandpass(p complex128, w0sq, bw float64) (complex128, complex128) {
	pb := p * complex(bw, 0)
	d := cmplx.Sqrt(pb*pb - complex(4*w0sq, 0))
	return (pb + d) / 2, (pb - d) / 2
}
