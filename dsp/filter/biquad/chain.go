package biquad

import "math"

// Chain cascades sections in order behind an input gain.
type Chain struct {
	coeffs []Coefficients
	states []state
	gain   float64
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithGain scales the input of the cascade. The default is 1.
func WithGain(g float64) ChainOption {
	return func(c *Chain) { c.gain = g }
}

// NewChain returns a cascade of the given sections with cleared state.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	c := &Chain{
		coeffs: append([]Coefficients(nil), coeffs...),
		states: make([]state, len(coeffs)),
		gain:   1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Sections returns the number of second-order sections.
func (c *Chain) Sections() int { return len(c.coeffs) }

// Filter runs buf through the cascade in place. State carries over between
// calls until Reset.
func (c *Chain) Filter(buf []float64) {
	if c.gain != 1 {
		for i := range buf {
			buf[i] *= c.gain
		}
	}
	for i := range c.coeffs {
		c.states[i].filter(&c.coeffs[i], buf)
	}
}

// Reset clears the delay lines.
func (c *Chain) Reset() {
	clear(c.states)
}

// Response is the product of the section responses at freqHz.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for _, s := range c.coeffs {
		h *= s.Response(freqHz, sampleRate)
	}
	return h
}

// Magnitude returns |H(f)| of the cascade.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	m2 := c.gain * c.gain
	for _, s := range c.coeffs {
		m2 *= s.MagnitudeSquared(freqHz, sampleRate)
	}
	return math.Sqrt(m2)
}

// MagnitudeResponse evaluates |H| at each frequency of freqsHz. Negative
// frequencies give the mirrored value.
func (c *Chain) MagnitudeResponse(freqsHz []float64, sampleRate float64) []float64 {
	out := make([]float64, len(freqsHz))
	for i, f := range freqsHz {
		out[i] = c.Magnitude(f, sampleRate)
	}
	return out
}
