package competitor

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/storeinsight"
)

// Similarity weights. They are fixed and sum to 1, which keeps scores
// deterministic and bounded to [0,1].
const (
	weightCatalog = 0.35
	weightTags    = 0.30
	weightPrice   = 0.20
	weightSocial  = 0.15
)

// Score computes the deterministic similarity between two stores as a
// weighted sum of normalized signals. Comparing a store against itself
// yields 1. A signal that is absent on both sides counts as equal.
func Score(main, candidate *storeinsight.StoreInsights) float64 {
	score := weightCatalog*ratioSignal(float64(len(main.ProductCatalog)), float64(len(candidate.ProductCatalog))) +
		weightTags*tagJaccard(main.ProductCatalog, candidate.ProductCatalog) +
		weightPrice*priceBandOverlap(main.ProductCatalog, candidate.ProductCatalog) +
		weightSocial*ratioSignal(float64(main.SocialHandles.Count()), float64(candidate.SocialHandles.Count()))

	// Clamp float drift at the edges.
	return math.Min(1, math.Max(0, score))
}

// ratioSignal maps two non-negative magnitudes to [0,1]: equal values score
// 1, disjoint magnitudes approach 0.
func ratioSignal(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	return math.Min(a, b) / math.Max(a, b)
}

// tagJaccard is the Jaccard overlap of the two catalogs' tag sets,
// case-insensitive.
func tagJaccard(a, b []storeinsight.Product) float64 {
	setA, setB := tagSet(a), tagSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var intersection int
	for tag := range setA {
		if setB[tag] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tagSet(catalog []storeinsight.Product) map[string]bool {
	set := make(map[string]bool)
	for _, p := range catalog {
		for _, tag := range p.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				set[tag] = true
			}
		}
	}
	return set
}

// priceBandOverlap compares the [min,max] price ranges of two catalogs as
// interval overlap over the combined span. Prices that fail to parse are
// ignored.
func priceBandOverlap(a, b []storeinsight.Product) float64 {
	minA, maxA, okA := priceBand(a)
	minB, maxB, okB := priceBand(b)
	if !okA && !okB {
		return 1
	}
	if !okA || !okB {
		return 0
	}

	low := math.Max(minA, minB)
	high := math.Min(maxA, maxB)
	if high < low {
		return 0
	}

	span := math.Max(maxA, maxB) - math.Min(minA, minB)
	if span == 0 {
		// Both bands are a single identical point.
		return 1
	}
	return (high - low) / span
}

func priceBand(catalog []storeinsight.Product) (min, max float64, ok bool) {
	for _, p := range catalog {
		price, err := strconv.ParseFloat(p.Price, 64)
		if err != nil || price <= 0 {
			continue
		}
		if !ok || price < min {
			min = price
		}
		if !ok || price > max {
			max = price
		}
		ok = true
	}
	return min, max, ok
}

// rankResults orders competitor results by descending similarity score with
// a deterministic tie-break on domain name.
func rankResults(results []storeinsight.CompetitorResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return storeinsight.Domain(results[i].WebsiteURL) < storeinsight.Domain(results[j].WebsiteURL)
	})
}
