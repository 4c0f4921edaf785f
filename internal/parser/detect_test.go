package parser

import (
	"testing"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		want     models.Format
	}{
		{"csv extension", "recording.csv", "", models.FormatCSV},
		{"csv extension uppercase", "RECORDING.CSV", "", models.FormatCSV},
		{"json extension", "samples.json", "", models.FormatJSON},
		{"json extension mixed case", "samples.JsOn", "", models.FormatJSON},
		{"png extension", "scan.png", "", models.FormatImage},
		{"jpg extension", "scan.jpg", "", models.FormatImage},
		{"jpeg extension", "scan.jpeg", "", models.FormatImage},
		{"extension wins over mime", "data.csv", "application/json", models.FormatCSV},
		{"mime fallback csv", "upload", "text/csv", models.FormatCSV},
		{"mime fallback csv with charset", "upload", "text/csv; charset=utf-8", models.FormatCSV},
		{"mime fallback json", "upload", "application/json", models.FormatJSON},
		{"mime fallback image", "upload", "image/png", models.FormatImage},
		{"mime fallback any image subtype", "upload", "image/webp", models.FormatImage},
		{"unknown extension unknown mime", "notes.txt", "text/plain", models.FormatUnknown},
		{"no extension no mime", "upload", "", models.FormatUnknown},
		{"unrelated binary", "archive.zip", "application/zip", models.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFormat(tt.filename, tt.mimeType)
			if got != tt.want {
				t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.filename, tt.mimeType, got, tt.want)
			}
		})
	}
}
