// Package models contains domain types for the CardioMate ECG backend.
package models

// Format identifies the payload format of an uploaded recording.
// It is a closed set: every switch over a Format must handle all four
// values so that adding a format is a compile-visible change.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatImage   Format = "image"
	FormatUnknown Format = "unknown"
)

// AcceptedExtensions lists the upload extensions the backend recognizes,
// in the order they are reported to clients on a rejected upload.
var AcceptedExtensions = []string{".csv", ".json", ".png", ".jpg", ".jpeg"}
