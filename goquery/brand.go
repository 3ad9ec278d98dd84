package goquery

import (
	"strings"

	"github.com/fwojciec/storeinsight"
	"golang.org/x/net/publicsuffix"
)

// titleSeparators split a <title> into the page part and the store part.
var titleSeparators = []string{" | ", " – ", " — ", " - "}

// Ensure BrandExtractor implements storeinsight.BrandExtractor.
var _ storeinsight.BrandExtractor = (*BrandExtractor)(nil)

// BrandExtractor derives a store's brand name from homepage HTML. It tries,
// in order: the og:site_name meta tag, the last segment of the <title>, the
// header logo's alt text, and finally the registrable domain of the site URL.
type BrandExtractor struct{}

// NewBrandExtractor creates a BrandExtractor.
func NewBrandExtractor() *BrandExtractor {
	return &BrandExtractor{}
}

// BrandName never fails: the domain fallback always produces a value.
func (e *BrandExtractor) BrandName(homepageHTML, websiteURL string) string {
	doc := parse(homepageHTML)
	if doc != nil {
		if name, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
			if name = collapseSpace(name); name != "" {
				return name
			}
		}

		if name := brandFromTitle(doc.Find("title").First().Text()); name != "" {
			return name
		}

		if alt, ok := doc.Find("header img[alt], .logo img[alt], a.logo img[alt]").First().Attr("alt"); ok {
			if alt = collapseSpace(alt); alt != "" && !strings.EqualFold(alt, "logo") {
				return strings.TrimSuffix(alt, " logo")
			}
		}
	}

	return brandFromDomain(websiteURL)
}

// brandFromTitle returns the store part of a "Page | Store" title. Shopify
// themes put the store name after the separator.
func brandFromTitle(title string) string {
	title = collapseSpace(title)
	if title == "" {
		return ""
	}
	for _, sep := range titleSeparators {
		if i := strings.LastIndex(title, sep); i >= 0 {
			return collapseSpace(title[i+len(sep):])
		}
	}
	return title
}

// brandFromDomain title-cases the registrable domain's leftmost label, so
// "https://acme-store.co.uk" becomes "Acme Store".
func brandFromDomain(websiteURL string) string {
	domain := storeinsight.Domain(websiteURL)
	if domain == "" {
		return ""
	}

	if etld, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		domain = etld
	}

	label, _, _ := strings.Cut(domain, ".")
	words := strings.FieldsFunc(label, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
