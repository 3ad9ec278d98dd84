package storeinsight

import (
	"context"
	"time"
)

// Competitor count bounds for analysis requests.
const (
	MinCompetitors     = 1
	MaxCompetitors     = 20
	DefaultCompetitors = 5
)

// CompetitorResult holds one analyzed competitor. SimilarityScore is a
// deterministic value in [0,1]; identical inputs always yield identical
// scores.
type CompetitorResult struct {
	CompetitorName        string         `json:"competitorName,omitempty"`
	WebsiteURL            string         `json:"websiteUrl"`
	Insights              *StoreInsights `json:"insights"`
	SimilarityScore       float64        `json:"similarityScore"`
	CompetitiveAdvantages []string       `json:"competitiveAdvantages"`
}

// CompetitorAnalysis is the aggregate result of a competitor batch.
// Competitors are sorted by descending similarity score, ties broken by
// domain name.
type CompetitorAnalysis struct {
	MainBrand       *StoreInsights     `json:"mainBrand"`
	Competitors     []CompetitorResult `json:"competitors"`
	AnalysisSummary string             `json:"analysisSummary,omitempty"`
	AnalyzedAt      time.Time          `json:"analyzedAt"`
}

// Discoverer finds candidate competitor domains for a brand. It is an
// external collaborator; results are unverified and may include the main
// domain or duplicates, which callers must remove.
type Discoverer interface {
	DiscoverCompetitors(ctx context.Context, websiteURL string, insights *StoreInsights, limit int) ([]string, error)
}

// InsightService runs one full extraction pipeline for a store.
// Implemented by the orchestrator; consumed by the competitor engine, which
// re-invokes it per candidate.
type InsightService interface {
	ExtractInsights(ctx context.Context, websiteURL string) (*StoreInsights, error)
}

// InsightCache caches extraction results by normalized website URL with a
// TTL. It is passed into the orchestrator explicitly rather than held as
// ambient process-wide state.
type InsightCache interface {
	Get(websiteURL string) (*StoreInsights, bool)
	Put(websiteURL string, insights *StoreInsights)
}
