package parser

import (
	"path/filepath"
	"strings"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
)

// DetectFormat classifies an upload by filename extension first and the
// declared MIME type second. Extension matching is case-insensitive.
// Unrecognized uploads map to FormatUnknown and must be rejected by the
// caller before any parser runs.
func DetectFormat(filename, mimeType string) models.Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return models.FormatCSV
	case ".json":
		return models.FormatJSON
	case ".png", ".jpg", ".jpeg":
		return models.FormatImage
	}

	// No (or unknown) extension: fall back to the declared MIME type,
	// ignoring any parameters such as "; charset=utf-8".
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case mt == "text/csv":
		return models.FormatCSV
	case mt == "application/json":
		return models.FormatJSON
	case strings.HasPrefix(mt, "image/"):
		return models.FormatImage
	}

	return models.FormatUnknown
}
