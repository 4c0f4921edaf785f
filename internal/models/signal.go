package models

// Signal is an ordered sequence of amplitude samples paired with the
// effective sampling rate. Instances are never mutated after creation;
// every pipeline stage derives new values.
type Signal struct {
	Samples      []float64 `json:"samples"`
	SampleRateHz float64   `json:"sampleRateHz"`
}

// SampleCount returns the number of samples in the signal.
func (s *Signal) SampleCount() int {
	return len(s.Samples)
}

// DurationSec returns the recording length in seconds.
func (s *Signal) DurationSec() float64 {
	if s.SampleRateHz <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRateHz
}

// PreprocessResult is the numeric summary embedded verbatim into the
// persisted report under its `preprocess` field. EstimatedHeartRateBpm is
// nil (JSON null) when no estimate is defined; it is never 0 or NaN.
type PreprocessResult struct {
	SampleRateHz          float64  `json:"sampleRateHz"`
	SampleCount           int      `json:"sampleCount"`
	DurationSec           float64  `json:"durationSec"`
	Mean                  float64  `json:"mean"`
	Std                   float64  `json:"std"`
	Min                   float64  `json:"min"`
	Max                   float64  `json:"max"`
	EstimatedHeartRateBpm *float64 `json:"estimatedHeartRateBpm"`
	RPeakIndices          []int    `json:"rPeakIndices"`
}

// EmptyPreprocessResult returns the all-zero/empty sentinel used for
// image-format uploads, where no signal is parsed.
func EmptyPreprocessResult() PreprocessResult {
	return PreprocessResult{RPeakIndices: []int{}}
}

// SignalPreview holds truncated copies of the cleaned and normalized
// waveforms, retained only for UI rendering and storage economy. It is
// produced after all statistics are computed and feeds no computation.
type SignalPreview struct {
	Cleaned    []float64 `json:"cleaned"`
	Normalized []float64 `json:"normalized"`
}
