// json.go - JSON amplitude series parser
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
)

// jsonEnvelope is the object form of a JSON upload. Snake-case aliases
// are accepted because exported recordings use either convention.
type jsonEnvelope struct {
	Samples         []json.RawMessage `json:"samples"`
	SampleRateHz    *float64          `json:"sampleRateHz"`
	SampleRateSnake *float64          `json:"sample_rate_hz"`
}

// ParseJSON decodes raw JSON text into a Signal. The payload is either a
// bare array of numbers or an object carrying a samples array and an
// optional embedded sample rate; an embedded rate overrides the
// caller-supplied default.
func ParseJSON(content string, defaultSampleRateHz float64) (*models.Signal, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	trimmed := strings.TrimLeftFunc(content, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var (
		elements []json.RawMessage
		rate     = defaultSampleRateHz
	)
	switch {
	case strings.HasPrefix(trimmed, "["):
		if err := dec.Decode(&elements); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
	case strings.HasPrefix(trimmed, "{"):
		var env jsonEnvelope
		if err := dec.Decode(&env); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
		elements = env.Samples
		embedded := env.SampleRateHz
		if embedded == nil {
			embedded = env.SampleRateSnake
		}
		if embedded != nil {
			rate = *embedded
		}
	default:
		return nil, fmt.Errorf("invalid JSON payload: expected array or object")
	}

	if err := validateSampleRate(rate); err != nil {
		return nil, err
	}

	samples := make([]float64, len(elements))
	for i, raw := range elements {
		v, ok := parseFinite(string(raw))
		if !ok {
			return nil, &ParseError{
				Row:     i,
				Content: string(raw),
				Reason:  "element is not a finite number",
			}
		}
		samples[i] = v
	}

	return &models.Signal{Samples: samples, SampleRateHz: rate}, nil
}
