// Package competitor implements competitor discovery, scoring and ranking.
// Each candidate competitor is analyzed with a full extraction run; scoring
// over the extracted insights is purely deterministic.
package competitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/storeinsight"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps simultaneous candidate extraction runs so a
// competitor batch cannot exhaust outbound connections.
const DefaultConcurrency = 3

// Analyzer runs competitor analyses. Discoverer and Insights are required;
// Synthesizer and Logger are optional.
type Analyzer struct {
	Discoverer  storeinsight.Discoverer
	Insights    storeinsight.InsightService
	Synthesizer storeinsight.Synthesizer
	Concurrency int
	Logger      *slog.Logger
}

// Analyze extracts the main brand's insights, discovers candidate
// competitors, runs the extraction pipeline against each, and returns the
// scored, ranked results. maxCompetitors of 0 selects the default; values
// outside [MinCompetitors, MaxCompetitors] are rejected.
func (a *Analyzer) Analyze(ctx context.Context, websiteURL string, maxCompetitors int) (*storeinsight.CompetitorAnalysis, error) {
	if maxCompetitors == 0 {
		maxCompetitors = storeinsight.DefaultCompetitors
	}
	if maxCompetitors < storeinsight.MinCompetitors || maxCompetitors > storeinsight.MaxCompetitors {
		return nil, storeinsight.Errorf(storeinsight.EINVALID, "max competitors must be between %d and %d", storeinsight.MinCompetitors, storeinsight.MaxCompetitors)
	}

	normalized, err := storeinsight.NormalizeURL(websiteURL)
	if err != nil {
		return nil, err
	}

	main, err := a.Insights.ExtractInsights(ctx, normalized)
	if err != nil {
		return nil, err
	}

	discovered, err := a.Discoverer.DiscoverCompetitors(ctx, normalized, main, maxCompetitors)
	if err != nil {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "competitor discovery failed: %s", err)
	}

	candidates := dedupeCandidates(discovered, storeinsight.Domain(normalized))
	results := a.analyzeCandidates(ctx, main, candidates)

	rankResults(results)
	if len(results) > maxCompetitors {
		results = results[:maxCompetitors]
	}

	analysis := &storeinsight.CompetitorAnalysis{
		MainBrand:   main,
		Competitors: results,
		AnalyzedAt:  time.Now().UTC(),
	}
	analysis.AnalysisSummary = a.summarize(ctx, analysis)
	return analysis, nil
}

// analyzeCandidates runs the extraction pipeline against each candidate
// concurrently. A candidate's failure excludes it without aborting siblings.
func (a *Analyzer) analyzeCandidates(ctx context.Context, main *storeinsight.StoreInsights, candidates []string) []storeinsight.CompetitorResult {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var mu sync.Mutex
	var results []storeinsight.CompetitorResult

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, candidate := range candidates {
		g.Go(func() error {
			insights, err := a.Insights.ExtractInsights(gctx, candidate)
			if err != nil {
				a.logger().Debug("candidate extraction failed", "url", candidate, "error", err)
				return nil
			}

			result := storeinsight.CompetitorResult{
				CompetitorName:        insights.BrandName,
				WebsiteURL:            insights.WebsiteURL,
				Insights:              insights,
				SimilarityScore:       Score(main, insights),
				CompetitiveAdvantages: Advantages(main, insights),
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// summarize builds the templated analysis summary and optionally rephrases
// it through the synthesizer. The template is the fallback on any failure,
// so numeric content is always grounded.
func (a *Analyzer) summarize(ctx context.Context, analysis *storeinsight.CompetitorAnalysis) string {
	draft := buildSummary(analysis)
	if a.Synthesizer == nil || draft == "" {
		return draft
	}

	phrased, err := a.Synthesizer.SummarizeAnalysis(ctx, draft)
	if err != nil || phrased == "" {
		return draft
	}
	return phrased
}

func buildSummary(analysis *storeinsight.CompetitorAnalysis) string {
	brand := analysis.MainBrand.BrandName
	if brand == "" {
		brand = storeinsight.Domain(analysis.MainBrand.WebsiteURL)
	}

	if len(analysis.Competitors) == 0 {
		return fmt.Sprintf("No comparable competitors were successfully analyzed for %s.", brand)
	}

	var total float64
	for _, c := range analysis.Competitors {
		total += c.SimilarityScore
	}
	avg := total / float64(len(analysis.Competitors))

	top := analysis.Competitors[0]
	topName := top.CompetitorName
	if topName == "" {
		topName = storeinsight.Domain(top.WebsiteURL)
	}

	return fmt.Sprintf("Analyzed %d competitors of %s with an average similarity of %.2f. The closest competitor is %s with a similarity score of %.2f.",
		len(analysis.Competitors), brand, avg, topName, top.SimilarityScore)
}

// dedupeCandidates normalizes discovered domains, removes the main domain
// and duplicates, and preserves discovery order.
func dedupeCandidates(discovered []string, mainDomain string) []string {
	seen := map[string]bool{mainDomain: true}
	var candidates []string
	for _, raw := range discovered {
		normalized, err := storeinsight.NormalizeURL(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		domain := storeinsight.Domain(normalized)
		if seen[domain] {
			continue
		}
		seen[domain] = true
		candidates = append(candidates, normalized)
	}
	return candidates
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
