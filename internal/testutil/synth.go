// synth.go - Synthetic ECG fixtures for tests
package testutil

import "math"

// SyntheticECG generates a deterministic ECG-like waveform: gaussian
// P-QRS-T bumps repeated at the given rate plus a slow baseline drift.
// It is not clinical data, just periodic beats with a realistic shape
// that a QRS detector must find.
func SyntheticECG(bpm, sampleRateHz, durationSec float64) []float64 {
	n := int(durationSec * sampleRateHz)
	out := make([]float64, n)

	cycleHz := bpm / 60.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRateHz
		phase := t * cycleHz
		phase -= math.Floor(phase) // position within the beat, 0..1

		// Slow respiration-like drift the preprocessor must remove.
		drift := 0.15 * math.Sin(2*math.Pi*0.3*t)

		out[i] = drift +
			0.08*gauss(phase, 0.18, 0.03) + // P
			-0.12*gauss(phase, 0.30, 0.01) + // Q
			1.00*gauss(phase, 0.32, 0.008) + // R
			-0.25*gauss(phase, 0.35, 0.012) + // S
			0.25*gauss(phase, 0.60, 0.06) // T
	}
	return out
}

// ExpectedBeats returns how many R-peaks a SyntheticECG recording of the
// given parameters contains.
func ExpectedBeats(bpm, durationSec float64) int {
	return int(durationSec * bpm / 60.0)
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
