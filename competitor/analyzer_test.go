package competitor_test

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/competitor"
	"github.com/fwojciec/storeinsight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insightsByURL serves canned insights per normalized URL and fails for
// unknown URLs.
func insightsByURL(stores map[string]*storeinsight.StoreInsights) *mock.InsightService {
	return &mock.InsightService{
		ExtractInsightsFn: func(ctx context.Context, websiteURL string) (*storeinsight.StoreInsights, error) {
			if insights, ok := stores[websiteURL]; ok {
				return insights, nil
			}
			return nil, storeinsight.Errorf(storeinsight.EUNREACHABLE, "store unreachable at %s", websiteURL)
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("ranks discovered candidates and respects the bound", func(t *testing.T) {
		t.Parallel()

		// Main brand with a 10-product catalog; candidates with catalogs of
		// decreasing similarity.
		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {
				WebsiteURL:     "https://mainbrand.com",
				BrandName:      "Main Brand",
				ProductCatalog: make([]storeinsight.Product, 10),
			},
		}
		var discovered []string
		for i := range 8 {
			url := fmt.Sprintf("https://candidate-%d.com", i)
			stores[url] = &storeinsight.StoreInsights{
				WebsiteURL:     url,
				BrandName:      fmt.Sprintf("Candidate %d", i),
				ProductCatalog: make([]storeinsight.Product, 10+i*10),
			}
			discovered = append(discovered, url)
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					return discovered, nil
				},
			},
			Insights: insightsByURL(stores),
		}

		analysis, err := a.Analyze(context.Background(), "https://mainbrand.com", 5)

		require.NoError(t, err)
		require.Len(t, analysis.Competitors, 5)
		assert.True(t, sort.SliceIsSorted(analysis.Competitors, func(i, j int) bool {
			return analysis.Competitors[i].SimilarityScore > analysis.Competitors[j].SimilarityScore
		}))
		// The identically-sized catalog is the closest match.
		assert.Equal(t, "Candidate 0", analysis.Competitors[0].CompetitorName)
	})

	t.Run("ties break deterministically by domain name", func(t *testing.T) {
		t.Parallel()

		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {WebsiteURL: "https://mainbrand.com"},
			"https://zeta.com":      {WebsiteURL: "https://zeta.com"},
			"https://alpha.com":     {WebsiteURL: "https://alpha.com"},
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					return []string{"zeta.com", "alpha.com"}, nil
				},
			},
			Insights: insightsByURL(stores),
		}

		analysis, err := a.Analyze(context.Background(), "https://mainbrand.com", 5)

		require.NoError(t, err)
		require.Len(t, analysis.Competitors, 2)
		assert.Equal(t, "https://alpha.com", analysis.Competitors[0].WebsiteURL)
		assert.Equal(t, "https://zeta.com", analysis.Competitors[1].WebsiteURL)
	})

	t.Run("removes the main domain and duplicates from candidates", func(t *testing.T) {
		t.Parallel()

		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {WebsiteURL: "https://mainbrand.com"},
			"https://other.com":     {WebsiteURL: "https://other.com"},
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					return []string{"mainbrand.com", "other.com", "https://other.com/", "OTHER.com"}, nil
				},
			},
			Insights: insightsByURL(stores),
		}

		analysis, err := a.Analyze(context.Background(), "https://mainbrand.com", 5)

		require.NoError(t, err)
		require.Len(t, analysis.Competitors, 1)
		assert.Equal(t, "https://other.com", analysis.Competitors[0].WebsiteURL)
	})

	t.Run("a failing candidate run excludes only that candidate", func(t *testing.T) {
		t.Parallel()

		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {WebsiteURL: "https://mainbrand.com"},
			"https://alive.com":     {WebsiteURL: "https://alive.com"},
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					return []string{"dead.com", "alive.com"}, nil
				},
			},
			Insights: insightsByURL(stores),
		}

		analysis, err := a.Analyze(context.Background(), "https://mainbrand.com", 5)

		require.NoError(t, err)
		require.Len(t, analysis.Competitors, 1)
		assert.Equal(t, "https://alive.com", analysis.Competitors[0].WebsiteURL)
	})

	t.Run("rejects out-of-range competitor counts", func(t *testing.T) {
		t.Parallel()

		a := &competitor.Analyzer{}

		_, err := a.Analyze(context.Background(), "https://mainbrand.com", 21)

		require.Error(t, err)
		assert.Equal(t, storeinsight.EINVALID, storeinsight.ErrorCode(err))
	})

	t.Run("zero competitor count selects the default", func(t *testing.T) {
		t.Parallel()

		var requestedLimit int
		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {WebsiteURL: "https://mainbrand.com"},
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					requestedLimit = limit
					return nil, nil
				},
			},
			Insights: insightsByURL(stores),
		}

		_, err := a.Analyze(context.Background(), "https://mainbrand.com", 0)

		require.NoError(t, err)
		assert.Equal(t, storeinsight.DefaultCompetitors, requestedLimit)
	})

	t.Run("main brand extraction failure aborts the analysis", func(t *testing.T) {
		t.Parallel()

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{},
			Insights:   insightsByURL(nil),
		}

		_, err := a.Analyze(context.Background(), "https://down.example.com", 5)

		require.Error(t, err)
		assert.Equal(t, storeinsight.EUNREACHABLE, storeinsight.ErrorCode(err))
	})

	t.Run("summary preserves the template when the synthesizer fails", func(t *testing.T) {
		t.Parallel()

		stores := map[string]*storeinsight.StoreInsights{
			"https://mainbrand.com": {WebsiteURL: "https://mainbrand.com", BrandName: "Main Brand"},
			"https://other.com":     {WebsiteURL: "https://other.com", BrandName: "Other"},
		}

		a := &competitor.Analyzer{
			Discoverer: &mock.Discoverer{
				DiscoverCompetitorsFn: func(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
					return []string{"other.com"}, nil
				},
			},
			Insights: insightsByURL(stores),
			Synthesizer: &mock.Synthesizer{
				SummarizeAnalysisFn: func(ctx context.Context, draft string) (string, error) {
					return "", storeinsight.Errorf(storeinsight.EINTERNAL, "model unavailable")
				},
			},
		}

		analysis, err := a.Analyze(context.Background(), "https://mainbrand.com", 5)

		require.NoError(t, err)
		assert.Contains(t, analysis.AnalysisSummary, "Main Brand")
		assert.Contains(t, analysis.AnalysisSummary, "1 competitors")
	})
}
