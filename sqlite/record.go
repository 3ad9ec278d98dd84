package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/storeinsight"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storeinsight.ExtractionRecordService = (*ExtractionRecordService)(nil)

// ExtractionRecordService implements storeinsight.ExtractionRecordService
// using SQLite. Writes are append-only; records are never updated.
type ExtractionRecordService struct {
	db *DB
}

// NewExtractionRecordService creates a new ExtractionRecordService.
func NewExtractionRecordService(db *DB) *ExtractionRecordService {
	return &ExtractionRecordService{db: db}
}

// CreateRecord appends a new extraction record. The record's ID and
// CreatedAt are assigned here when unset.
func (s *ExtractionRecordService) CreateRecord(ctx context.Context, rec *storeinsight.ExtractionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extraction_records (id, website_url, status, error_message, extraction_time_seconds, data_points_extracted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.WebsiteURL, string(rec.Status), rec.ErrorMessage,
		rec.ExtractionTime, rec.DataPoints, rec.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRecords retrieves records matching the filter, newest first.
func (s *ExtractionRecordService) FindRecords(ctx context.Context, filter storeinsight.RecordFilter) ([]*storeinsight.ExtractionRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, website_url, status, error_message, extraction_time_seconds, data_points_extracted, created_at FROM extraction_records WHERE 1=1")

	if filter.WebsiteURL != nil {
		query.WriteString(" AND website_url = ?")
		args = append(args, *filter.WebsiteURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*storeinsight.ExtractionRecord
	for rows.Next() {
		var rec storeinsight.ExtractionRecord
		var status, createdAt string

		if err := rows.Scan(&rec.ID, &rec.WebsiteURL, &status, &rec.ErrorMessage,
			&rec.ExtractionTime, &rec.DataPoints, &createdAt); err != nil {
			return nil, err
		}
		rec.Status = storeinsight.ExtractionStatus(status)

		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		records = append(records, &rec)
	}

	return records, rows.Err()
}

// RecordStats aggregates count, success-rate, and average-time statistics
// over all records.
func (s *ExtractionRecordService) RecordStats(ctx context.Context) (*storeinsight.RecordStats, error) {
	var stats storeinsight.RecordStats
	var avgTime *float64

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			AVG(extraction_time_seconds)
		FROM extraction_records
	`, string(storeinsight.StatusSuccess), string(storeinsight.StatusPartial), string(storeinsight.StatusFailed)).
		Scan(&stats.TotalExtractions, &stats.SuccessfulExtractions, &stats.PartialExtractions, &stats.FailedExtractions, &avgTime)
	if err != nil {
		return nil, err
	}

	if avgTime != nil {
		stats.AvgExtractionTime = *avgTime
	}
	if stats.TotalExtractions > 0 {
		stats.SuccessRate = float64(stats.SuccessfulExtractions) / float64(stats.TotalExtractions)
	}

	return &stats, nil
}

// DeleteRecordsByURL removes all records for a website URL and returns the
// number deleted.
func (s *ExtractionRecordService) DeleteRecordsByURL(ctx context.Context, websiteURL string) (int, error) {
	if websiteURL == "" {
		return 0, storeinsight.Errorf(storeinsight.EINVALID, "website URL required")
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM extraction_records WHERE website_url = ?
	`, websiteURL)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
