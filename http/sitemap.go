package http

import (
	"bufio"
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/storeinsight"
	"github.com/fwojciec/storeinsight/bloom"
)

// Ensure SitemapDiscoverer implements storeinsight.PageDiscoverer.
var _ storeinsight.PageDiscoverer = (*SitemapDiscoverer)(nil)

// maxSitemaps caps how many sitemap documents are processed per store to
// guard against pathological sitemap indexes.
const maxSitemaps = 10

// maxDiscoveredPages caps the number of content page URLs returned.
const maxDiscoveredPages = 200

// SitemapDiscoverer lists a store's content pages from its sitemap. Sitemap
// URLs come from robots.txt directives with /sitemap.xml as the fallback;
// sitemap indexes are resolved one level deep, preferring page sitemaps.
// Only content pages (/pages/, /blogs/, /policies/) are returned; product
// and collection URLs are covered by the catalog feed.
type SitemapDiscoverer struct {
	fetcher storeinsight.Fetcher
}

// NewSitemapDiscoverer creates a SitemapDiscoverer on top of a Fetcher.
func NewSitemapDiscoverer(fetcher storeinsight.Fetcher) *SitemapDiscoverer {
	return &SitemapDiscoverer{fetcher: fetcher}
}

// DiscoverPages returns candidate content page URLs for the store.
// Returns an empty slice when the store publishes no sitemap; discovery
// failures are not distinguishable from absence and are not errors.
func (s *SitemapDiscoverer) DiscoverPages(ctx context.Context, websiteURL string) ([]string, error) {
	base, err := url.Parse(websiteURL)
	if err != nil {
		return nil, storeinsight.Errorf(storeinsight.EINVALID, "invalid website URL %q", websiteURL)
	}

	sitemapURLs := s.sitemapURLs(ctx, base)

	var pages []string
	seen := bloom.NewURLSet(2*maxDiscoveredPages, 0.001)
	processed := 0

	for len(sitemapURLs) > 0 && processed < maxSitemaps {
		smURL := sitemapURLs[0]
		sitemapURLs = sitemapURLs[1:]
		if seen.Visit(smURL) {
			continue
		}
		processed++

		body, err := s.fetcher.Fetch(ctx, smURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		locs, nested := parseSitemap(body)
		for _, loc := range nested {
			// Product/collection sitemaps are not useful here.
			if strings.Contains(loc, "_products_") || strings.Contains(loc, "_collections_") {
				continue
			}
			sitemapURLs = append(sitemapURLs, loc)
		}
		for _, loc := range locs {
			if !isContentPage(loc, base.Host) || seen.Visit(loc) {
				continue
			}
			pages = append(pages, loc)
			if len(pages) >= maxDiscoveredPages {
				return pages, nil
			}
		}
	}

	if pages == nil {
		pages = []string{}
	}
	return pages, nil
}

// sitemapURLs finds sitemap locations from robots.txt, falling back to the
// conventional /sitemap.xml path.
func (s *SitemapDiscoverer) sitemapURLs(ctx context.Context, base *url.URL) []string {
	root := base.Scheme + "://" + base.Host

	var urls []string
	if body, err := s.fetcher.Fetch(ctx, root+"/robots.txt"); err == nil {
		scanner := bufio.NewScanner(strings.NewReader(body))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if v, ok := strings.CutPrefix(line, "Sitemap:"); ok {
				if u := strings.TrimSpace(v); u != "" {
					urls = append(urls, u)
				}
			}
		}
	}

	if len(urls) == 0 {
		urls = append(urls, root+"/sitemap.xml")
	}
	return urls
}

// parseSitemap extracts page locations and nested sitemap locations from a
// sitemap or sitemap-index document.
func parseSitemap(body string) (locs, nested []string) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, nil
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			if loc := sm.SelectElement("loc"); loc != nil {
				if u := strings.TrimSpace(loc.Text()); u != "" {
					nested = append(nested, u)
				}
			}
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			if loc := u.SelectElement("loc"); loc != nil {
				if v := strings.TrimSpace(loc.Text()); v != "" {
					locs = append(locs, v)
				}
			}
		}
	}
	return locs, nested
}

// isContentPage reports whether loc is a same-host content page.
func isContentPage(loc, host string) bool {
	u, err := url.Parse(loc)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Host, host) {
		return false
	}
	p := u.Path
	return strings.HasPrefix(p, "/pages/") || strings.HasPrefix(p, "/blogs/") || strings.HasPrefix(p, "/policies/")
}
