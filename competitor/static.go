package competitor

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/storeinsight"
)

// industryDomains maps a product keyword to curated storefront domains in
// that category. Used when no external discovery collaborator is available.
var industryDomains = map[string][]string{
	"apparel":     {"everlane.com", "uniqlo.com", "asos.com", "allbirds.com"},
	"clothing":    {"everlane.com", "uniqlo.com", "asos.com", "allbirds.com"},
	"shoes":       {"allbirds.com", "vans.com", "toms.com"},
	"jewelry":     {"mejuri.com", "gorjana.com", "missoma.com"},
	"beauty":      {"glossier.com", "theordinary.com", "fentybeauty.com"},
	"skincare":    {"glossier.com", "theordinary.com", "kyliecosmetics.com"},
	"fitness":     {"gymshark.com", "aloyoga.com", "vuoriclothing.com"},
	"coffee":      {"bluebottlecoffee.com", "counterculturecoffee.com", "deathwishcoffee.com"},
	"tea":         {"harney.com", "davidstea.com"},
	"home":        {"brooklinen.com", "parachutehome.com", "ruggable.com"},
	"bags":        {"awaytravel.com", "dagnedover.com", "bellroy.com"},
	"accessories": {"bellroy.com", "mvmt.com", "dagnedover.com"},
	"food":        {"thrivemarket.com", "dailyharvest.com", "magicspoon.com"},
	"pet":         {"chewy.com", "barkbox.com", "wildone.com"},
	"outdoor":     {"rei.com", "backcountry.com", "cotopaxi.com"},
}

// Ensure StaticDiscoverer implements storeinsight.Discoverer at compile time.
var _ storeinsight.Discoverer = (*StaticDiscoverer)(nil)

// StaticDiscoverer suggests competitors from a curated per-category domain
// list. It matches the store's product types and tags against category
// keywords, so it works offline and deterministically.
type StaticDiscoverer struct{}

// NewStaticDiscoverer creates a StaticDiscoverer.
func NewStaticDiscoverer() *StaticDiscoverer {
	return &StaticDiscoverer{}
}

// DiscoverCompetitors returns up to limit curated domains for the store's
// inferred categories. An empty result means no category matched.
func (d *StaticDiscoverer) DiscoverCompetitors(_ context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
	if limit < 1 {
		return nil, storeinsight.Errorf(storeinsight.EINVALID, "limit must be positive")
	}
	if insights == nil {
		return nil, nil
	}

	seen := make(map[string]bool)
	var domains []string
	for _, keyword := range categoryKeywords(insights) {
		for _, domain := range industryDomains[keyword] {
			if seen[domain] {
				continue
			}
			seen[domain] = true
			domains = append(domains, domain)
			if len(domains) == limit {
				return domains, nil
			}
		}
	}
	return domains, nil
}

// categoryKeywords collects known category keywords appearing in the
// store's product types and tags, in first-seen order.
func categoryKeywords(insights *storeinsight.StoreInsights) []string {
	seen := make(map[string]bool)
	var keywords []string

	// Iterate keywords in sorted order so results are stable across runs.
	sorted := make([]string, 0, len(industryDomains))
	for keyword := range industryDomains {
		sorted = append(sorted, keyword)
	}
	sort.Strings(sorted)

	match := func(value string) {
		value = strings.ToLower(value)
		for _, keyword := range sorted {
			if seen[keyword] || !strings.Contains(value, keyword) {
				continue
			}
			seen[keyword] = true
			keywords = append(keywords, keyword)
		}
	}

	for _, p := range insights.ProductCatalog {
		match(p.ProductType)
		for _, tag := range p.Tags {
			match(tag)
		}
	}
	return keywords
}
