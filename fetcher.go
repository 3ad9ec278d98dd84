package storeinsight

import "context"

// Fetcher retrieves raw page content from URLs.
//
// Implementations classify failures with error codes: EINVALID for malformed
// or non-http(s) URLs (rejected before any network call), ENOTFOUND for
// missing pages or exhausted retries on connect failure, and EBLOCKED for
// persistent 403/429 responses. Only transient failures are retried.
type Fetcher interface {
	// Fetch retrieves the body at url. The context controls timeout and
	// cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// PageDiscoverer lists candidate content page URLs for a store, typically
// from its sitemap. Extractors merge discovered pages with their fixed
// well-known slug tables.
type PageDiscoverer interface {
	// DiscoverPages returns content page URLs for the store.
	// Returns an empty slice (not an error) when no sitemap exists.
	DiscoverPages(ctx context.Context, websiteURL string) ([]string, error)
}
