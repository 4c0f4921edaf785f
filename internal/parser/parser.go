// Package parser decodes uploaded ECG recordings into uniform signals.
//
// Parsing is atomic: a row or element that is not a finite number fails
// the whole parse with a *ParseError, and no partial Signal is ever
// returned. The sample rate is always supplied by the caller; the
// parsers hold no defaults of their own.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError describes a row or element that could not be interpreted as
// a finite number. Row is the zero-based row (CSV) or element (JSON)
// index, carried so the caller can surface a precise message.
type ParseError struct {
	Row     int
	Content string
	Reason  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// parseFinite parses s as a float64 and reports whether the result is a
// finite number. NaN and infinities are rejected, as are values like
// "1e999" that overflow to +Inf.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// validateSampleRate rejects non-positive or non-finite sample rates.
func validateSampleRate(sampleRateHz float64) error {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) || math.IsInf(sampleRateHz, 0) {
		return fmt.Errorf("sample rate must be a positive finite number, got %v", sampleRateHz)
	}
	return nil
}
