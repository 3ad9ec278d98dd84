package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/storeinsight"
	"google.golang.org/genai"
)

// Ensure Discoverer implements storeinsight.Discoverer at compile time.
var _ storeinsight.Discoverer = (*Discoverer)(nil)

// Discoverer suggests competitor domains for a brand using Google Gemini.
// Suggestions are unverified; the competitor engine validates each candidate
// by running a full extraction against it.
type Discoverer struct {
	client *genai.Client
}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer(client *genai.Client) *Discoverer {
	return &Discoverer{client: client}
}

// DiscoverCompetitors asks for up to limit competitor domains. The brand's
// extracted catalog summary is included as context when available.
func (d *Discoverer) DiscoverCompetitors(ctx context.Context, websiteURL string, insights *storeinsight.StoreInsights, limit int) ([]string, error) {
	if websiteURL == "" {
		return nil, storeinsight.Errorf(storeinsight.EINVALID, "website URL required")
	}
	if limit < 1 {
		return nil, storeinsight.Errorf(storeinsight.EINVALID, "limit must be positive")
	}

	prompt := buildDiscoveryPrompt(websiteURL, insights, limit)

	result, err := d.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "gemini returned nil result")
	}

	var domains []string
	if err := json.Unmarshal([]byte(stripCodeFence(result.Text())), &domains); err != nil {
		return nil, storeinsight.Errorf(storeinsight.EINTERNAL, "unmarshal competitor domains: %v", err)
	}
	if len(domains) > limit {
		domains = domains[:limit]
	}
	return domains, nil
}

func buildDiscoveryPrompt(websiteURL string, insights *storeinsight.StoreInsights, limit int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "List up to %d direct competitors of the online store at %s.\n", limit, websiteURL)

	if insights != nil {
		if insights.BrandName != "" {
			fmt.Fprintf(&sb, "The store's brand is %q.\n", insights.BrandName)
		}
		if types := productTypes(insights.ProductCatalog); len(types) > 0 {
			fmt.Fprintf(&sb, "It sells: %s.\n", strings.Join(types, ", "))
		}
		if insights.BrandContext != "" {
			fmt.Fprintf(&sb, "About the brand: %s\n", insights.BrandContext)
		}
	}

	sb.WriteString("Only include stores that sell online and compete in the same product category. Respond with a JSON array of bare domain names (e.g. [\"competitor.com\"]), no prose.")
	return sb.String()
}

// productTypes returns up to five distinct product types from the catalog.
func productTypes(catalog []storeinsight.Product) []string {
	seen := make(map[string]bool)
	var types []string
	for _, p := range catalog {
		t := strings.TrimSpace(p.ProductType)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		types = append(types, t)
		if len(types) == 5 {
			break
		}
	}
	return types
}
