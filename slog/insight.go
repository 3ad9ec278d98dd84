package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storeinsight"
)

// Ensure LoggingInsightService implements storeinsight.InsightService.
var _ storeinsight.InsightService = (*LoggingInsightService)(nil)

// LoggingInsightService wraps an InsightService with per-run logging.
type LoggingInsightService struct {
	next   storeinsight.InsightService
	logger *slog.Logger
}

// NewLoggingInsightService creates a new LoggingInsightService.
func NewLoggingInsightService(next storeinsight.InsightService, logger *slog.Logger) *LoggingInsightService {
	return &LoggingInsightService{next: next, logger: logger}
}

// ExtractInsights delegates to the wrapped service and logs the run outcome
// with its data point count and duration.
func (s *LoggingInsightService) ExtractInsights(ctx context.Context, websiteURL string) (*storeinsight.StoreInsights, error) {
	begin := time.Now()
	insights, err := s.next.ExtractInsights(ctx, websiteURL)

	dataPoints := 0
	if insights != nil {
		dataPoints = insights.DataPoints()
	}
	s.logger.Info("extraction",
		"url", websiteURL,
		"data_points", dataPoints,
		"duration", time.Since(begin),
		"err", err,
	)
	return insights, err
}
