package mock

import (
	"context"

	"github.com/fwojciec/storeinsight"
)

var _ storeinsight.Synthesizer = (*Synthesizer)(nil)

// Synthesizer is a mock implementation of storeinsight.Synthesizer.
// Unset functions behave as deterministic pass-throughs.
type Synthesizer struct {
	SummarizeBrandFn    func(ctx context.Context, text string) (string, error)
	StructureFAQsFn     func(ctx context.Context, faqs []storeinsight.FAQ) ([]storeinsight.FAQ, error)
	SummarizeAnalysisFn func(ctx context.Context, draft string) (string, error)
}

func (s *Synthesizer) SummarizeBrand(ctx context.Context, text string) (string, error) {
	if s.SummarizeBrandFn == nil {
		return text, nil
	}
	return s.SummarizeBrandFn(ctx, text)
}

func (s *Synthesizer) StructureFAQs(ctx context.Context, faqs []storeinsight.FAQ) ([]storeinsight.FAQ, error) {
	if s.StructureFAQsFn == nil {
		return faqs, nil
	}
	return s.StructureFAQsFn(ctx, faqs)
}

func (s *Synthesizer) SummarizeAnalysis(ctx context.Context, draft string) (string, error) {
	if s.SummarizeAnalysisFn == nil {
		return draft, nil
	}
	return s.SummarizeAnalysisFn(ctx, draft)
}

var _ storeinsight.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of storeinsight.Discoverer.
type Discoverer struct {
	DiscoverCompetitorsFn func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error)
}

func (d *Discoverer) DiscoverCompetitors(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
	return d.DiscoverCompetitorsFn(ctx, websiteURL, insights, limit)
}

var _ storeinsight.InsightService = (*InsightService)(nil)

// InsightService is a mock implementation of storeinsight.InsightService.
type InsightService struct {
	ExtractInsightsFn func(ctx context.Context, websiteURL string) (*storeinsight.StoreInsights, error)
}

func (s *InsightService) ExtractInsights(ctx context.Context, websiteURL string) (*storeinsight.StoreInsights, error) {
	return s.ExtractInsightsFn(ctx, websiteURL)
}

var _ storeinsight.InsightCache = (*InsightCache)(nil)

// InsightCache is a mock implementation of storeinsight.InsightCache.
type InsightCache struct {
	GetFn func(websiteURL string) (*storeinsight.StoreInsights, bool)
	PutFn func(websiteURL string, insights *storeinsight.StoreInsights)
}

func (c *InsightCache) Get(websiteURL string) (*storeinsight.StoreInsights, bool) {
	if c.GetFn == nil {
		return nil, false
	}
	return c.GetFn(websiteURL)
}

func (c *InsightCache) Put(websiteURL string, insights *storeinsight.StoreInsights) {
	if c.PutFn != nil {
		c.PutFn(websiteURL, insights)
	}
}
