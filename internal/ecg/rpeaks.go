// rpeaks.go - Pan-Tompkins style QRS detection
package ecg

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// QRS energy concentrates in the 5-15 Hz band; the bandpass
	// suppresses P/T-wave and muscle-noise content outside it.
	qrsBandLowHz  = 5.0
	qrsBandHighHz = 15.0

	// integrationWindowSec approximates QRS width.
	integrationWindowSec = 0.150

	// refractorySec is the minimum physiologically plausible interval
	// between beats (~300 bpm ceiling).
	refractorySec = 0.200

	// learningSec seeds the adaptive threshold from the leading part of
	// the energy envelope.
	learningSec = 2.0

	// flatSignalStd is the variance floor below which the detector
	// reports no beats instead of chasing noise.
	flatSignalStd = 1e-10
)

// DetectRPeaks locates heartbeat (QRS) peaks in a cleaned signal and
// returns their indices, strictly increasing, in the cleaned signal's
// index space. Near-zero-variance signals and signals shorter than one
// QRS window yield an empty list.
func DetectRPeaks(cleaned []float64, sampleRateHz float64) []int {
	peaks := []int{}
	n := len(cleaned)
	if n == 0 || sampleRateHz <= 0 {
		return peaks
	}

	integWin := int(integrationWindowSec*sampleRateHz + 0.5)
	if integWin < 1 {
		integWin = 1
	}
	if n < integWin {
		return peaks
	}
	if stat.PopStdDev(cleaned, nil) < flatSignalStd {
		return peaks
	}

	env := integrate(square(derivative(bandpass(cleaned, sampleRateHz))), integWin)

	// Seed the running signal/noise peak estimates from the leading
	// stretch of the envelope.
	learn := int(learningSec * sampleRateHz)
	if learn < 1 {
		learn = 1
	}
	if learn > n {
		learn = n
	}
	spk := 0.25 * floats.Max(env[:learn])
	npk := 0.5 * stat.Mean(env[:learn], nil)
	threshold := npk + 0.25*(spk-npk)

	refractory := int(refractorySec*sampleRateHz + 0.5)
	if refractory < 1 {
		refractory = 1
	}

	for i := 1; i+1 < n; i++ {
		if env[i] < env[i-1] || env[i] <= env[i+1] {
			continue
		}
		if env[i] > threshold {
			spk = 0.125*env[i] + 0.875*spk
			r := locateR(cleaned, i, integWin)
			peaks = acceptPeak(peaks, r, refractory, cleaned)
		} else {
			npk = 0.125*env[i] + 0.875*npk
		}
		threshold = npk + 0.25*(spk-npk)
	}

	return peaks
}

// acceptPeak appends r unless it falls inside the refractory period of
// the previously accepted peak, in which case the larger of the two is
// kept.
func acceptPeak(peaks []int, r, refractory int, cleaned []float64) []int {
	if len(peaks) > 0 {
		last := peaks[len(peaks)-1]
		if r-last < refractory {
			if cleaned[r] > cleaned[last] {
				peaks[len(peaks)-1] = r
			}
			return peaks
		}
	}
	return append(peaks, r)
}

// locateR maps an envelope peak back to the R position: the integration
// stage lags the QRS, so the R-peak is the maximum of the cleaned signal
// inside the window ending at the envelope peak.
func locateR(cleaned []float64, envIdx, integWin int) int {
	lo := envIdx - integWin
	if lo < 0 {
		lo = 0
	}
	best := lo
	for i := lo + 1; i <= envIdx && i < len(cleaned); i++ {
		if cleaned[i] > cleaned[best] {
			best = i
		}
	}
	return best
}

// bandpass applies cascaded first-order low-pass (15 Hz) and high-pass
// (5 Hz) sections.
func bandpass(x []float64, sampleRateHz float64) []float64 {
	dt := 1.0 / sampleRateHz

	rcLow := 1.0 / (2 * math.Pi * qrsBandHighHz)
	aLow := dt / (rcLow + dt)
	lp := make([]float64, len(x))
	lp[0] = aLow * x[0]
	for i := 1; i < len(x); i++ {
		lp[i] = lp[i-1] + aLow*(x[i]-lp[i-1])
	}

	rcHigh := 1.0 / (2 * math.Pi * qrsBandLowHz)
	aHigh := rcHigh / (rcHigh + dt)
	hp := make([]float64, len(lp))
	hp[0] = lp[0]
	for i := 1; i < len(lp); i++ {
		hp[i] = aHigh * (hp[i-1] + lp[i] - lp[i-1])
	}
	return hp
}

// derivative applies the five-point difference that emphasizes the steep
// QRS slope. Indices before the signal start clamp to the first sample.
func derivative(x []float64) []float64 {
	at := func(i int) float64 {
		if i < 0 {
			return x[0]
		}
		return x[i]
	}
	d := make([]float64, len(x))
	for i := range x {
		d[i] = (2*x[i] + at(i-1) - at(i-3) - 2*at(i-4)) / 8
	}
	return d
}

// square amplifies large slopes non-linearly and suppresses small ones.
func square(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * v
	}
	return out
}

// integrate smooths the squared slope into an energy envelope using a
// trailing window of integWin samples.
func integrate(x []float64, integWin int) []float64 {
	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}
	out := make([]float64, len(x))
	for i := range x {
		lo := i - integWin + 1
		if lo < 0 {
			lo = 0
		}
		out[i] = (prefix[i+1] - prefix[lo]) / float64(i+1-lo)
	}
	return out
}
