package storeinsight

import (
	"context"
	"time"
)

// ExtractionStatus is the terminal status of an extraction run.
type ExtractionStatus string

// Extraction run statuses.
const (
	StatusSuccess ExtractionStatus = "success"
	StatusPartial ExtractionStatus = "partial"
	StatusFailed  ExtractionStatus = "failed"
)

// Valid reports whether s is a known status.
func (s ExtractionStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// ExtractionRecord is the append-only audit record of one extraction attempt.
// Exactly one record is created per attempt, regardless of outcome.
type ExtractionRecord struct {
	ID             string           `json:"id"`
	WebsiteURL     string           `json:"websiteUrl"`
	Status         ExtractionStatus `json:"status"`
	ErrorMessage   string           `json:"errorMessage,omitempty"`
	ExtractionTime float64          `json:"extractionTimeSeconds"`
	DataPoints     int              `json:"dataPointsExtracted"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ExtractionRecord) Validate() error {
	if r.WebsiteURL == "" {
		return Errorf(EINVALID, "record website URL required")
	}
	if !r.Status.Valid() {
		return Errorf(EINVALID, "invalid record status %q", r.Status)
	}
	if r.ExtractionTime < 0 {
		return Errorf(EINVALID, "extraction time must not be negative")
	}
	if r.DataPoints < 0 {
		return Errorf(EINVALID, "data point count must not be negative")
	}
	return nil
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	WebsiteURL *string           `json:"websiteUrl"`
	Status     *ExtractionStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RecordStats aggregates extraction records for reporting.
type RecordStats struct {
	TotalExtractions      int     `json:"totalExtractions"`
	SuccessfulExtractions int     `json:"successfulExtractions"`
	PartialExtractions    int     `json:"partialExtractions"`
	FailedExtractions     int     `json:"failedExtractions"`
	SuccessRate           float64 `json:"successRate"`
	AvgExtractionTime     float64 `json:"avgExtractionTimeSeconds"`
}

// ExtractionRecordService is the persistence contract for extraction records.
// Writes are append-only: one insert per run, historical records are never
// mutated.
type ExtractionRecordService interface {
	// CreateRecord appends a new extraction record.
	CreateRecord(ctx context.Context, rec *ExtractionRecord) error

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*ExtractionRecord, error)

	// RecordStats aggregates count, success-rate, and average-time statistics.
	RecordStats(ctx context.Context) (*RecordStats, error)

	// DeleteRecordsByURL removes all records for a website URL and returns
	// the number deleted.
	DeleteRecordsByURL(ctx context.Context, websiteURL string) (int, error)
}
