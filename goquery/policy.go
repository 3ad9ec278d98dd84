package goquery

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/storeinsight"
)

// minPolicyLength is the minimum text length for a page to count as a
// policy. Shorter pages are usually placeholders or soft 404s.
const minPolicyLength = 100

// policySlugs lists well-known paths per policy type, most specific first.
// The /policies/ paths are the platform's canonical locations.
var policySlugs = map[storeinsight.PolicyType][]string{
	storeinsight.PolicyPrivacy: {"/policies/privacy-policy", "/pages/privacy-policy", "/privacy-policy", "/privacy"},
	storeinsight.PolicyReturn:  {"/policies/return-policy", "/pages/return-policy", "/return-policy", "/returns"},
	storeinsight.PolicyRefund:  {"/policies/refund-policy", "/pages/refund-policy", "/refund-policy", "/refunds"},
	storeinsight.PolicyTerms:   {"/policies/terms-of-service", "/pages/terms-of-service", "/terms-of-service", "/terms"},
}

// policyKeywords matches discovered candidate pages to a policy type by
// path substring.
var policyKeywords = map[storeinsight.PolicyType][]string{
	storeinsight.PolicyPrivacy: {"privacy"},
	storeinsight.PolicyReturn:  {"return"},
	storeinsight.PolicyRefund:  {"refund"},
	storeinsight.PolicyTerms:   {"terms", "conditions"},
}

// Ensure PolicyService implements storeinsight.PolicyService.
var _ storeinsight.PolicyService = (*PolicyService)(nil)

// PolicyService extracts the four policy slots. Each policy type is tried
// independently against its candidate URLs; the first page with enough main
// text wins. A type with no usable page is simply absent from the result.
type PolicyService struct {
	fetcher storeinsight.Fetcher
	text    storeinsight.TextExtractor
}

// NewPolicyService creates a PolicyService.
func NewPolicyService(fetcher storeinsight.Fetcher, text storeinsight.TextExtractor) *PolicyService {
	return &PolicyService{fetcher: fetcher, text: text}
}

// Policies extracts all policy slots concurrently. It only returns an error
// when the context is canceled; everything else degrades to absence.
func (s *PolicyService) Policies(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
	policies := make(map[storeinsight.PolicyType]*storeinsight.Policy)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, t := range storeinsight.PolicyTypes() {
		wg.Add(1)
		go func(t storeinsight.PolicyType) {
			defer wg.Done()
			if p := s.extractPolicy(ctx, websiteURL, t, candidatePages); p != nil {
				mu.Lock()
				policies[t] = p
				mu.Unlock()
			}
		}(t)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return policies, nil
}

// extractPolicy tries candidate URLs for one policy type in order.
func (s *PolicyService) extractPolicy(ctx context.Context, websiteURL string, t storeinsight.PolicyType, candidatePages []string) *storeinsight.Policy {
	candidates := make([]string, 0, 6)
	for _, slug := range policySlugs[t] {
		candidates = append(candidates, websiteURL+slug)
	}
	for _, page := range candidatePages {
		if matchesKeywords(page, policyKeywords[t]) {
			candidates = append(candidates, page)
		}
	}

	for _, u := range candidates {
		if ctx.Err() != nil {
			return nil
		}

		body, err := s.fetcher.Fetch(ctx, u)
		if err != nil {
			continue
		}

		_, text, err := s.text.Text(body)
		if err != nil || len(text) < minPolicyLength {
			continue
		}

		return &storeinsight.Policy{
			Content: text,
			URL:     u,
		}
	}
	return nil
}

// matchesKeywords reports whether the URL path contains any keyword.
func matchesKeywords(rawURL string, keywords []string) bool {
	lower := strings.ToLower(rawURL)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
