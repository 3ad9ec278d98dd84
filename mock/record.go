package mock

import (
	"context"

	"github.com/fwojciec/storeinsight"
)

var _ storeinsight.ExtractionRecordService = (*ExtractionRecordService)(nil)

// ExtractionRecordService is a mock implementation of
// storeinsight.ExtractionRecordService.
type ExtractionRecordService struct {
	CreateRecordFn       func(ctx context.Context, rec *storeinsight.ExtractionRecord) error
	FindRecordsFn        func(ctx context.Context, filter storeinsight.RecordFilter) ([]*storeinsight.ExtractionRecord, error)
	RecordStatsFn        func(ctx context.Context) (*storeinsight.RecordStats, error)
	DeleteRecordsByURLFn func(ctx context.Context, websiteURL string) (int, error)
}

func (s *ExtractionRecordService) CreateRecord(ctx context.Context, rec *storeinsight.ExtractionRecord) error {
	if s.CreateRecordFn == nil {
		return nil
	}
	return s.CreateRecordFn(ctx, rec)
}

func (s *ExtractionRecordService) FindRecords(ctx context.Context, filter storeinsight.RecordFilter) ([]*storeinsight.ExtractionRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *ExtractionRecordService) RecordStats(ctx context.Context) (*storeinsight.RecordStats, error) {
	return s.RecordStatsFn(ctx)
}

func (s *ExtractionRecordService) DeleteRecordsByURL(ctx context.Context, websiteURL string) (int, error) {
	return s.DeleteRecordsByURLFn(ctx, websiteURL)
}
