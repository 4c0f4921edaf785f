// Package store keeps completed analysis records in memory for later
// retrieval by the UI. Persistence proper belongs to an external
// collaborator; this store is bounded and process-local.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
)

// DefaultMaxRecords bounds retention when no limit is configured.
const DefaultMaxRecords = 100

// Records is a bounded, concurrency-safe analysis record store. The
// oldest record is evicted once the limit is reached.
type Records struct {
	mu      sync.RWMutex
	max     int
	records map[string]*models.AnalysisRecord
	order   []string // insertion order, oldest first
}

// NewRecords creates a record store retaining at most max records.
func NewRecords(max int) *Records {
	if max <= 0 {
		max = DefaultMaxRecords
	}
	return &Records{
		max:     max,
		records: make(map[string]*models.AnalysisRecord),
	}
}

// Add stores a new analysis record and returns it with its assigned ID.
func (r *Records) Add(fileName string, format models.Format, preprocess models.PreprocessResult, preview models.SignalPreview) *models.AnalysisRecord {
	rec := &models.AnalysisRecord{
		ID:         uuid.New().String(),
		FileName:   fileName,
		Format:     format,
		CreatedAt:  time.Now().UTC(),
		Preprocess: preprocess,
		Preview:    preview,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.records, oldest)
	}
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)

	return rec
}

// Get returns the record with the given ID.
func (r *Records) Get(id string) (*models.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("analysis not found: %s", id)
	}
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (r *Records) Recent(limit int) []*models.AnalysisRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.order) {
		limit = len(r.order)
	}
	out := make([]*models.AnalysisRecord, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[r.order[i]])
	}
	return out
}

// Delete removes a record by ID.
func (r *Records) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("analysis not found: %s", id)
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of retained records.
func (r *Records) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
