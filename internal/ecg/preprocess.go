// Package ecg implements the numeric stages of the waveform pipeline:
// baseline removal, normalization, QRS detection and heart-rate
// estimation. Every function is pure and never panics on finite input;
// degenerate signals yield well-defined empty or zero results.
package ecg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// baselineWindowSec is the moving-average width used to estimate
// electrode drift. It is wide relative to a QRS complex so removing it
// leaves the 5-15 Hz content intact.
const baselineWindowSec = 0.8

// Preprocessed holds the cleaned and normalized waveforms plus summary
// statistics over the cleaned signal. Both slices have the same length
// as the input and are never reordered relative to it.
type Preprocessed struct {
	Cleaned    []float64
	Normalized []float64
	Mean       float64
	Std        float64
	Min        float64
	Max        float64
}

// Preprocess removes baseline wander from samples and rescales the
// result to zero mean and unit variance. A zero-variance signal
// normalizes to all zeros rather than dividing by zero.
func Preprocess(samples []float64, sampleRateHz float64) Preprocessed {
	if len(samples) == 0 {
		return Preprocessed{Cleaned: []float64{}, Normalized: []float64{}}
	}

	window := oddWindow(baselineWindowSec, sampleRateHz, len(samples))
	baseline := movingAverage(samples, window)

	cleaned := make([]float64, len(samples))
	floats.SubTo(cleaned, samples, baseline)

	mean := stat.Mean(cleaned, nil)
	// Population standard deviation, matching the summary statistics the
	// report schema has always carried.
	std := stat.PopStdDev(cleaned, nil)
	if math.IsNaN(std) {
		std = 0
	}

	normalized := make([]float64, len(cleaned))
	if std > 0 {
		for i, v := range cleaned {
			normalized[i] = (v - mean) / std
		}
	}

	return Preprocessed{
		Cleaned:    cleaned,
		Normalized: normalized,
		Mean:       mean,
		Std:        std,
		Min:        floats.Min(cleaned),
		Max:        floats.Max(cleaned),
	}
}

// oddWindow converts a duration to an odd sample count in [1, n].
func oddWindow(sec, sampleRateHz float64, n int) int {
	w := int(sec*sampleRateHz + 0.5)
	if w%2 == 0 {
		w++
	}
	if w > n {
		w = n
		if w%2 == 0 {
			w--
		}
	}
	if w < 1 {
		w = 1
	}
	return w
}

// movingAverage computes a centered moving average, shrinking the window
// at the edges so output length equals input length.
func movingAverage(x []float64, window int) []float64 {
	half := window / 2
	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, len(x))
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half + 1
		if hi > len(x) {
			hi = len(x)
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}
