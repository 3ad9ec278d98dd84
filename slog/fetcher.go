// Package slog provides logging decorators for storeinsight services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storeinsight"
)

// Ensure LoggingFetcher implements storeinsight.Fetcher.
var _ storeinsight.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of every fetch.
type LoggingFetcher struct {
	next   storeinsight.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next storeinsight.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome with byte
// count and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	f.logger.Info("fetch",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(begin),
		"err", err,
	)
	return body, err
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
