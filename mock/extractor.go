package mock

import (
	"context"

	"github.com/fwojciec/storeinsight"
)

var _ storeinsight.StoreDetector = (*StoreDetector)(nil)

// StoreDetector is a mock implementation of storeinsight.StoreDetector.
type StoreDetector struct {
	DetectFn func(html string) bool
}

func (d *StoreDetector) Detect(html string) bool {
	if d.DetectFn == nil {
		return true
	}
	return d.DetectFn(html)
}

var _ storeinsight.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of storeinsight.CatalogService.
type CatalogService struct {
	ProductsFn     func(ctx context.Context, websiteURL string) ([]storeinsight.Product, error)
	HeroProductsFn func(homepageHTML, websiteURL string, catalog []storeinsight.Product) []storeinsight.Product
}

func (s *CatalogService) Products(ctx context.Context, websiteURL string) ([]storeinsight.Product, error) {
	return s.ProductsFn(ctx, websiteURL)
}

func (s *CatalogService) HeroProducts(homepageHTML, websiteURL string, catalog []storeinsight.Product) []storeinsight.Product {
	if s.HeroProductsFn == nil {
		return nil
	}
	return s.HeroProductsFn(homepageHTML, websiteURL, catalog)
}

var _ storeinsight.PolicyService = (*PolicyService)(nil)

// PolicyService is a mock implementation of storeinsight.PolicyService.
type PolicyService struct {
	PoliciesFn func(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error)
}

func (s *PolicyService) Policies(ctx context.Context, websiteURL string, candidatePages []string) (map[storeinsight.PolicyType]*storeinsight.Policy, error) {
	return s.PoliciesFn(ctx, websiteURL, candidatePages)
}

var _ storeinsight.FAQService = (*FAQService)(nil)

// FAQService is a mock implementation of storeinsight.FAQService.
type FAQService struct {
	FAQsFn func(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error)
}

func (s *FAQService) FAQs(ctx context.Context, websiteURL string, candidatePages []string) ([]storeinsight.FAQ, error) {
	return s.FAQsFn(ctx, websiteURL, candidatePages)
}

var _ storeinsight.SocialExtractor = (*SocialExtractor)(nil)

// SocialExtractor is a mock implementation of storeinsight.SocialExtractor.
type SocialExtractor struct {
	SocialHandlesFn func(homepageHTML string) storeinsight.SocialHandles
}

func (e *SocialExtractor) SocialHandles(homepageHTML string) storeinsight.SocialHandles {
	if e.SocialHandlesFn == nil {
		return storeinsight.SocialHandles{}
	}
	return e.SocialHandlesFn(homepageHTML)
}

var _ storeinsight.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of storeinsight.ContactService.
type ContactService struct {
	ContactDetailsFn func(ctx context.Context, homepageHTML, websiteURL string) storeinsight.ContactDetails
}

func (s *ContactService) ContactDetails(ctx context.Context, homepageHTML, websiteURL string) storeinsight.ContactDetails {
	if s.ContactDetailsFn == nil {
		return storeinsight.ContactDetails{}
	}
	return s.ContactDetailsFn(ctx, homepageHTML, websiteURL)
}

var _ storeinsight.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of storeinsight.LinkExtractor.
type LinkExtractor struct {
	ImportantLinksFn func(homepageHTML, websiteURL string) storeinsight.ImportantLinks
}

func (e *LinkExtractor) ImportantLinks(homepageHTML, websiteURL string) storeinsight.ImportantLinks {
	if e.ImportantLinksFn == nil {
		return storeinsight.ImportantLinks{}
	}
	return e.ImportantLinksFn(homepageHTML, websiteURL)
}

var _ storeinsight.BrandExtractor = (*BrandExtractor)(nil)

// BrandExtractor is a mock implementation of storeinsight.BrandExtractor.
type BrandExtractor struct {
	BrandNameFn func(homepageHTML, websiteURL string) string
}

func (e *BrandExtractor) BrandName(homepageHTML, websiteURL string) string {
	if e.BrandNameFn == nil {
		return ""
	}
	return e.BrandNameFn(homepageHTML, websiteURL)
}

var _ storeinsight.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of storeinsight.TextExtractor.
type TextExtractor struct {
	TextFn func(html string) (title, text string, err error)
}

func (e *TextExtractor) Text(html string) (string, string, error) {
	return e.TextFn(html)
}
