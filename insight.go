package storeinsight

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Product represents a single catalog item. Price fields are decimal strings
// exactly as published by the store feed; an empty string means the value was
// not present. Prices are never parsed into floats.
type Product struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle"`
	Description    string    `json:"description,omitempty"`
	Price          string    `json:"price,omitempty"`
	CompareAtPrice string    `json:"compareAtPrice,omitempty"`
	Vendor         string    `json:"vendor,omitempty"`
	ProductType    string    `json:"productType,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Images         []string  `json:"images,omitempty"`
	Variants       []Variant `json:"variants,omitempty"`
	Available      bool      `json:"available"`
	URL            string    `json:"url,omitempty"`
}

// Variant represents a purchasable variation of a product.
type Variant struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Price          string `json:"price,omitempty"`
	CompareAtPrice string `json:"compareAtPrice,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Available      bool   `json:"available"`
}

// PolicyType identifies one of the fixed policy slots.
type PolicyType string

// Policy slots extracted per store.
const (
	PolicyPrivacy PolicyType = "privacy"
	PolicyReturn  PolicyType = "return"
	PolicyRefund  PolicyType = "refund"
	PolicyTerms   PolicyType = "terms"
)

// PolicyTypes lists all policy slots in a stable order.
func PolicyTypes() []PolicyType {
	return []PolicyType{PolicyPrivacy, PolicyReturn, PolicyRefund, PolicyTerms}
}

// Policy holds the text of a store policy page. A missing policy is
// represented as a nil *Policy, never as an error.
type Policy struct {
	Content     string `json:"content"`
	URL         string `json:"url,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// FAQ is a single question/answer pair. Category is empty when it could not
// be inferred.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// SocialHandles holds normalized handles per platform. An empty field means
// the platform was not found, which is distinct from an extraction error.
type SocialHandles struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Pinterest string `json:"pinterest,omitempty"`
}

// Count returns the number of platforms with a handle.
func (s SocialHandles) Count() int {
	var n int
	for _, h := range []string{s.Instagram, s.Facebook, s.Twitter, s.TikTok, s.YouTube, s.LinkedIn, s.Pinterest} {
		if h != "" {
			n++
		}
	}
	return n
}

// ContactDetails holds contact information discovered on the store.
type ContactDetails struct {
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
	Address      string   `json:"address,omitempty"`
	SupportHours string   `json:"supportHours,omitempty"`
}

// Count returns the number of contact data points found.
func (c ContactDetails) Count() int {
	n := len(c.Emails) + len(c.PhoneNumbers)
	if c.Address != "" {
		n++
	}
	if c.SupportHours != "" {
		n++
	}
	return n
}

// ImportantLinks holds well-known store links matched by intent. An empty
// field means the intent was not matched.
type ImportantLinks struct {
	OrderTracking string `json:"orderTracking,omitempty"`
	ContactUs     string `json:"contactUs,omitempty"`
	Blogs         string `json:"blogs,omitempty"`
	SizeGuide     string `json:"sizeGuide,omitempty"`
	ShippingInfo  string `json:"shippingInfo,omitempty"`
	Careers       string `json:"careers,omitempty"`
	AboutUs       string `json:"aboutUs,omitempty"`
}

// Count returns the number of matched link intents.
func (l ImportantLinks) Count() int {
	var n int
	for _, u := range []string{l.OrderTracking, l.ContactUs, l.Blogs, l.SizeGuide, l.ShippingInfo, l.Careers, l.AboutUs} {
		if u != "" {
			n++
		}
	}
	return n
}

// StoreInsights is the aggregate produced by one extraction run. It is owned
// by the run that produced it; persistence collaborators receive it by value.
type StoreInsights struct {
	WebsiteURL     string         `json:"websiteUrl"`
	BrandName      string         `json:"brandName,omitempty"`
	ProductCatalog []Product      `json:"productCatalog"`
	HeroProducts   []Product      `json:"heroProducts"`
	PrivacyPolicy  *Policy        `json:"privacyPolicy,omitempty"`
	ReturnPolicy   *Policy        `json:"returnPolicy,omitempty"`
	RefundPolicy   *Policy        `json:"refundPolicy,omitempty"`
	TermsOfService *Policy        `json:"termsOfService,omitempty"`
	FAQs           []FAQ          `json:"faqs"`
	SocialHandles  SocialHandles  `json:"socialHandles"`
	ContactDetails ContactDetails `json:"contactDetails"`
	ImportantLinks ImportantLinks `json:"importantLinks"`
	BrandContext   string         `json:"brandContext,omitempty"`
	ExtractedAt    time.Time      `json:"extractedAt"`
}

// Policy returns the policy stored in the given slot.
func (s *StoreInsights) Policy(t PolicyType) *Policy {
	switch t {
	case PolicyPrivacy:
		return s.PrivacyPolicy
	case PolicyReturn:
		return s.ReturnPolicy
	case PolicyRefund:
		return s.RefundPolicy
	case PolicyTerms:
		return s.TermsOfService
	}
	return nil
}

// SetPolicy stores a policy in the given slot.
func (s *StoreInsights) SetPolicy(t PolicyType, p *Policy) {
	switch t {
	case PolicyPrivacy:
		s.PrivacyPolicy = p
	case PolicyReturn:
		s.ReturnPolicy = p
	case PolicyRefund:
		s.RefundPolicy = p
	case PolicyTerms:
		s.TermsOfService = p
	}
}

// PolicyCount returns the number of non-nil policy slots.
func (s *StoreInsights) PolicyCount() int {
	var n int
	for _, t := range PolicyTypes() {
		if s.Policy(t) != nil {
			n++
		}
	}
	return n
}

// DataPoints returns the total number of extracted data points across all
// sections. It is the value persisted on the extraction record.
func (s *StoreInsights) DataPoints() int {
	var n int
	if s.BrandName != "" {
		n++
	}
	n += len(s.ProductCatalog)
	n += len(s.HeroProducts)
	n += s.PolicyCount()
	n += len(s.FAQs)
	n += s.SocialHandles.Count()
	n += s.ContactDetails.Count()
	n += s.ImportantLinks.Count()
	if s.BrandContext != "" {
		n++
	}
	return n
}

// Fingerprint returns a stable hash over the catalog's product IDs and the
// section counts. Two runs against an unchanged store produce the same
// fingerprint regardless of sub-task completion order.
func (s *StoreInsights) Fingerprint() string {
	ids := make([]string, 0, len(s.ProductCatalog))
	for _, p := range s.ProductCatalog {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)

	var sb strings.Builder
	sb.WriteString(strings.Join(ids, ","))
	fmt.Fprintf(&sb, "|%d|%d|%d|%d", len(s.HeroProducts), s.PolicyCount(), len(s.FAQs), s.SocialHandles.Count())

	return fmt.Sprintf("%016x", xxhash.Sum64String(sb.String()))
}
