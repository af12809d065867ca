package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// formatHz renders a frequency with an SI prefix, e.g. "2.5 MHz".
func formatHz(hz float64) string {
	return humanize.SIWithDigits(hz, 3, "Hz")
}

// formatPa renders a pressure with an SI prefix, e.g. "1.2 MPa".
func formatPa(pa float64) string {
	return humanize.SIWithDigits(pa, 3, "Pa")
}

// parseHz accepts plain numbers ("2e6") and SI notation ("2 MHz", "500k").
func parseHz(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	v, unit, err := humanize.ParseSI(s)
	if err != nil {
		return 0, fmt.Errorf("invalid frequency %q: %w", s, err)
	}
	if unit != "" && !strings.EqualFold(unit, "hz") {
		return 0, fmt.Errorf("invalid frequency %q: unit %q is not Hz", s, unit)
	}
	return v, nil
}
