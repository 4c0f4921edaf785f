// heartrate.go - RR-interval based heart rate estimation
package ecg

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Instantaneous rates outside this range are physiologically impossible
// and are discarded before aggregation.
const (
	minPlausibleBpm = 20.0
	maxPlausibleBpm = 300.0
)

// EstimateHeartRate converts R-peak spacing into an estimated beats per
// minute. The median of the instantaneous rates makes the estimate
// robust to a single spurious or missed beat. It returns nil, never 0
// or NaN, when fewer than two peaks exist or no plausible RR interval
// remains.
func EstimateHeartRate(rPeaks []int, sampleRateHz float64) *float64 {
	if len(rPeaks) < 2 || sampleRateHz <= 0 {
		return nil
	}

	rates := make([]float64, 0, len(rPeaks)-1)
	for i := 1; i < len(rPeaks); i++ {
		rr := float64(rPeaks[i]-rPeaks[i-1]) / sampleRateHz
		if rr <= 0 {
			continue
		}
		bpm := 60.0 / rr
		if bpm < minPlausibleBpm || bpm > maxPlausibleBpm {
			continue
		}
		rates = append(rates, bpm)
	}
	if len(rates) == 0 {
		return nil
	}

	sort.Float64s(rates)
	median := stat.Quantile(0.5, stat.LinInterp, rates, nil)
	return &median
}
