package models

import "time"

// AnalysisRecord is the report-shaped output of one pipeline run, as held
// by the in-memory record store for later retrieval.
type AnalysisRecord struct {
	ID         string           `json:"id"`
	FileName   string           `json:"fileName"`
	Format     Format           `json:"format"`
	CreatedAt  time.Time        `json:"createdAt"`
	Preprocess PreprocessResult `json:"preprocess"`
	Preview    SignalPreview    `json:"preview"`
}
