package storeinsight

import "context"

// StoreDetector checks fetched homepage HTML for a recognizable storefront
// platform marker. A store without the marker fails the whole run with
// EUNREACHABLE; no other content condition does.
type StoreDetector interface {
	Detect(html string) bool
}

// CatalogService extracts the product catalog from a store's canonical
// machine-readable feed, and selects hero products from the homepage.
type CatalogService interface {
	// Products fetches the full catalog in fixed-size pages, iterating until
	// an empty page or a hard page-count limit. Entries with no usable
	// identity are skipped; duplicate IDs are deduplicated.
	Products(ctx context.Context, websiteURL string) ([]Product, error)

	// HeroProducts selects catalog items referenced from the homepage, in
	// first-appearance order, deduplicated by handle and capped. The
	// selection is heuristic: it approximates, not reproduces, the store's
	// curated featured set.
	HeroProducts(homepageHTML, websiteURL string, catalog []Product) []Product
}

// PolicyService extracts the store's policy pages. Candidate pages
// discovered from the store's sitemap or navigation supplement the fixed
// well-known slug tables. A missing policy is a nil entry, never an error;
// the returned map only contains found policies.
type PolicyService interface {
	Policies(ctx context.Context, websiteURL string, candidatePages []string) (map[PolicyType]*Policy, error)
}

// FAQService extracts question/answer pairs from the store's FAQ or help
// pages. An empty result means no FAQ page was found.
type FAQService interface {
	FAQs(ctx context.Context, websiteURL string, candidatePages []string) ([]FAQ, error)
}

// SocialExtractor scans homepage HTML for social platform links and
// normalizes them to bare handles.
type SocialExtractor interface {
	SocialHandles(homepageHTML string) SocialHandles
}

// ContactService extracts contact details from the homepage and the store's
// contact page. Extraction is best-effort; fields that cannot be found stay
// empty.
type ContactService interface {
	ContactDetails(ctx context.Context, homepageHTML, websiteURL string) ContactDetails
}

// LinkExtractor matches known link intents (order tracking, size guide,
// shipping, careers, about, blogs, contact) against homepage anchors.
type LinkExtractor interface {
	ImportantLinks(homepageHTML, websiteURL string) ImportantLinks
}

// BrandExtractor infers the brand name from homepage metadata, falling back
// to a name derived from the domain.
type BrandExtractor interface {
	BrandName(homepageHTML, websiteURL string) string
}

// TextExtractor extracts the main text content from an HTML page, removing
// boilerplate (nav, footer, ads).
type TextExtractor interface {
	// Text returns the page title and main text.
	Text(html string) (title, text string, err error)
}

// HTMLConverter converts an HTML fragment to Markdown. Used where extracted
// content keeps structure worth preserving, such as lists in FAQ answers.
type HTMLConverter interface {
	Convert(html string) (string, error)
}
