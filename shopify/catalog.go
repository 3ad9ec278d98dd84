package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeinsight"
)

// DefaultPageSize is the feed page size. 250 is the platform's maximum.
const DefaultPageSize = 250

// maxFeedPages is a hard safety limit on feed pagination, guarding against a
// misbehaving or infinite feed.
const maxFeedPages = 100

// DefaultHeroLimit caps the number of hero products selected from the
// homepage.
const DefaultHeroLimit = 8

// Compile-time interface verification.
var (
	_ storeinsight.StoreDetector  = (*Detector)(nil)
	_ storeinsight.CatalogService = (*CatalogService)(nil)
)

// CatalogService extracts the product catalog from the platform's
// products.json feed.
type CatalogService struct {
	fetcher   storeinsight.Fetcher
	pageSize  int
	heroLimit int
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithPageSize sets the feed page size. Useful for testing pagination.
func WithPageSize(n int) CatalogOption {
	return func(s *CatalogService) {
		s.pageSize = n
	}
}

// WithHeroLimit sets the maximum number of hero products.
func WithHeroLimit(n int) CatalogOption {
	return func(s *CatalogService) {
		s.heroLimit = n
	}
}

// NewCatalogService creates a CatalogService on top of a Fetcher.
func NewCatalogService(fetcher storeinsight.Fetcher, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		fetcher:   fetcher,
		pageSize:  DefaultPageSize,
		heroLimit: DefaultHeroLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// feedProduct mirrors the products.json entry shape. Tags appear as an array
// on storefront feeds and as a comma-joined string on older themes.
type feedProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Handle      string      `json:"handle"`
	BodyHTML    string      `json:"body_html"`
	Vendor      string      `json:"vendor"`
	ProductType string      `json:"product_type"`
	Tags        feedTags    `json:"tags"`
	Images      []feedImage `json:"images"`
	Variants    []struct {
		ID             int64   `json:"id"`
		Title          string  `json:"title"`
		Price          string  `json:"price"`
		CompareAtPrice *string `json:"compare_at_price"`
		SKU            string  `json:"sku"`
		Available      bool    `json:"available"`
	} `json:"variants"`
}

type feedImage struct {
	Src string `json:"src"`
}

// feedTags accepts both the array and comma-string encodings.
type feedTags []string

func (t *feedTags) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			tags = append(tags, v)
		}
	}
	*t = tags
	return nil
}

// Products fetches the catalog feed page by page until a short page or the
// hard page limit. Duplicate product IDs across pages are deduplicated, not
// double-counted.
func (s *CatalogService) Products(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
	var products []storeinsight.Product
	seen := make(map[string]bool)

	for page := 1; page <= maxFeedPages; page++ {
		feedURL := fmt.Sprintf("%s/products.json?limit=%d&page=%d", websiteURL, s.pageSize, page)

		body, err := s.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// Later pages failing ends pagination with what we have.
			break
		}

		var feed struct {
			Products []feedProduct `json:"products"`
		}
		if err := json.Unmarshal([]byte(body), &feed); err != nil {
			if page == 1 {
				return nil, storeinsight.Errorf(storeinsight.ENOTFOUND, "no machine-readable product feed at %s", websiteURL)
			}
			break
		}

		for _, fp := range feed.Products {
			p, ok := parseProduct(fp, websiteURL)
			if !ok || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			products = append(products, p)
		}

		if len(feed.Products) < s.pageSize {
			break
		}
	}

	return products, nil
}

// parseProduct converts one feed entry. Entries without an ID or title are
// skipped.
func parseProduct(fp feedProduct, websiteURL string) (storeinsight.Product, bool) {
	id := fp.ID.String()
	if id == "" || fp.Title == "" {
		return storeinsight.Product{}, false
	}

	p := storeinsight.Product{
		ID:          id,
		Title:       fp.Title,
		Handle:      fp.Handle,
		Description: fp.BodyHTML,
		Vendor:      fp.Vendor,
		ProductType: fp.ProductType,
		Tags:        fp.Tags,
	}

	for _, img := range fp.Images {
		if img.Src != "" {
			p.Images = append(p.Images, img.Src)
		}
	}

	for _, v := range fp.Variants {
		variant := storeinsight.Variant{
			ID:        v.ID,
			Title:     v.Title,
			Price:     v.Price,
			SKU:       v.SKU,
			Available: v.Available,
		}
		if v.CompareAtPrice != nil {
			variant.CompareAtPrice = *v.CompareAtPrice
		}
		p.Variants = append(p.Variants, variant)
		if v.Available {
			p.Available = true
		}
	}
	if len(p.Variants) > 0 {
		p.Price = p.Variants[0].Price
		p.CompareAtPrice = p.Variants[0].CompareAtPrice
	} else {
		// No variants published; assume orderable.
		p.Available = true
	}

	if fp.Handle != "" {
		p.URL = websiteURL + "/products/" + fp.Handle
	}

	return p, true
}

// HeroProducts selects catalog items linked from the homepage, preserving
// first-appearance order, deduplicating by handle, and capping at the hero
// limit. The selection is a heuristic approximation of the store's curated
// featured set; it may under- or over-select depending on the theme.
func (s *CatalogService) HeroProducts(homepageHTML, websiteURL string, catalog []storeinsight.Product) []storeinsight.Product {
	if len(catalog) == 0 {
		return nil
	}

	byHandle := make(map[string]storeinsight.Product, len(catalog))
	for _, p := range catalog {
		if p.Handle != "" {
			byHandle[p.Handle] = p
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(homepageHTML))
	if err != nil {
		return nil
	}

	var heroes []storeinsight.Product
	seen := make(map[string]bool)

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		handle := productHandle(href)
		if handle == "" || seen[handle] {
			return true
		}
		p, ok := byHandle[handle]
		if !ok {
			return true
		}
		seen[handle] = true
		heroes = append(heroes, p)
		return len(heroes) < s.heroLimit
	})

	return heroes
}

// productHandle extracts the product handle from an href, or "" when the
// href is not a product link.
func productHandle(href string) string {
	idx := strings.Index(href, "/products/")
	if idx == -1 {
		return ""
	}
	handle := href[idx+len("/products/"):]
	for _, sep := range []string{"?", "#", "/"} {
		if i := strings.Index(handle, sep); i != -1 {
			handle = handle[:i]
		}
	}
	return handle
}
