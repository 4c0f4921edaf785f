// Package pipeline assembles the full upload-to-summary transformation:
// format detection, parsing, preprocessing, R-peak detection and heart
// rate estimation. Run is pure and deterministic (identical bytes in,
// identical summary out), so invocations may run concurrently without
// coordination.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/abbey12/CardioMate-AI-sub000/internal/ecg"
	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
	"github.com/abbey12/CardioMate-AI-sub000/internal/parser"
)

// DefaultPreviewSamples caps the preview waveforms embedded in the
// persisted report.
const DefaultPreviewSamples = 2000

// ErrUnsupportedFormat is returned when the upload matches no known
// format; the caller must reject the request before any parser runs.
var ErrUnsupportedFormat = errors.New("unsupported upload format")

// Options carries the caller-supplied knobs. The HTTP layer resolves the
// default sample rate before invoking Run; the pipeline never holds one.
type Options struct {
	// SampleRateHz applies to CSV uploads and acts as the default for
	// JSON uploads without an embedded rate. Must be positive and finite.
	SampleRateHz float64

	// PreviewSamples truncates the preview waveforms; zero means
	// DefaultPreviewSamples. Truncation is a presentation concern and
	// never affects a computed statistic.
	PreviewSamples int
}

// Analysis is the complete pipeline output: the parsed signal (nil for
// image uploads), the numeric summary, and the UI preview.
type Analysis struct {
	Format     models.Format
	Signal     *models.Signal
	Preprocess models.PreprocessResult
	Preview    models.SignalPreview
}

// Run executes the pipeline on one upload. Parse failures surface
// unchanged as *parser.ParseError; image uploads yield the all-zero
// sentinel summary since no signal is parsed.
func Run(content []byte, filename, mimeType string, opts Options) (*Analysis, error) {
	format := parser.DetectFormat(filename, mimeType)

	var (
		sig *models.Signal
		err error
	)
	switch format {
	case models.FormatCSV:
		sig, err = parser.ParseCSV(string(content), opts.SampleRateHz)
	case models.FormatJSON:
		sig, err = parser.ParseJSON(string(content), opts.SampleRateHz)
	case models.FormatImage:
		// Interpreted by the external vision collaborator; the report
		// still carries an empty preprocess block.
		return &Analysis{
			Format:     models.FormatImage,
			Preprocess: models.EmptyPreprocessResult(),
			Preview:    models.SignalPreview{Cleaned: []float64{}, Normalized: []float64{}},
		}, nil
	case models.FormatUnknown:
		return nil, ErrUnsupportedFormat
	default:
		return nil, fmt.Errorf("unhandled format %q", format)
	}
	if err != nil {
		return nil, err
	}

	pre := ecg.Preprocess(sig.Samples, sig.SampleRateHz)
	peaks := ecg.DetectRPeaks(pre.Cleaned, sig.SampleRateHz)
	bpm := ecg.EstimateHeartRate(peaks, sig.SampleRateHz)

	result := models.PreprocessResult{
		SampleRateHz:          sig.SampleRateHz,
		SampleCount:           sig.SampleCount(),
		DurationSec:           sig.DurationSec(),
		Mean:                  pre.Mean,
		Std:                   pre.Std,
		Min:                   pre.Min,
		Max:                   pre.Max,
		EstimatedHeartRateBpm: bpm,
		RPeakIndices:          peaks,
	}

	limit := opts.PreviewSamples
	if limit <= 0 {
		limit = DefaultPreviewSamples
	}

	return &Analysis{
		Format: format,
		Signal: sig,
		// All statistics above are computed over the full waveforms;
		// truncation happens strictly afterwards, applied independently
		// to cleaned and normalized at the same fixed length.
		Preprocess: result,
		Preview: models.SignalPreview{
			Cleaned:    truncate(pre.Cleaned, limit),
			Normalized: truncate(pre.Normalized, limit),
		},
	}, nil
}

// truncate copies at most limit leading samples.
func truncate(x []float64, limit int) []float64 {
	if len(x) < limit {
		limit = len(x)
	}
	out := make([]float64, limit)
	copy(out, x[:limit])
	return out
}
