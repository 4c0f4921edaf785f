// csv.go - CSV amplitude series parser
package parser

import (
	"bufio"
	"strings"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
)

// ParseCSV decodes one amplitude sample per row from raw CSV text,
// preserving row order as sample order. A leading header row (no numeric
// column) is skipped; when a row has multiple columns the first numeric
// one is taken. sampleRateHz is supplied by the caller; the HTTP layer
// applies its configured default before this call.
func ParseCSV(content string, sampleRateHz float64) (*models.Signal, error) {
	if err := validateSampleRate(sampleRateHz); err != nil {
		return nil, err
	}

	samples := make([]float64, 0, strings.Count(content, "\n")+1)
	headerSeen := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	row := -1
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, ok := firstNumericColumn(line)
		if !ok {
			// A non-numeric first data row is a header; anything later
			// fails the whole parse.
			if len(samples) == 0 && !headerSeen {
				headerSeen = true
				continue
			}
			return nil, &ParseError{
				Row:     row,
				Content: line,
				Reason:  "no column parses as a finite number",
			}
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &models.Signal{Samples: samples, SampleRateHz: sampleRateHz}, nil
}

// firstNumericColumn returns the first comma-separated field of line that
// parses as a finite number.
func firstNumericColumn(line string) (float64, bool) {
	for len(line) > 0 {
		field := line
		if i := strings.IndexByte(line, ','); i >= 0 {
			field, line = line[:i], line[i+1:]
		} else {
			line = ""
		}
		if v, ok := parseFinite(field); ok {
			return v, true
		}
	}
	return 0, false
}
