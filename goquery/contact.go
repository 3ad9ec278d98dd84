package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeinsight"
)

const (
	maxEmails = 5
	maxPhones = 3
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9\s().\-]{7,17}[0-9]`)
)

// contactSlugs lists well-known contact page paths, tried after the homepage.
var contactSlugs = []string{
	"/pages/contact",
	"/pages/contact-us",
	"/contact",
}

// ignoredEmailSuffixes filters out asset filenames that match the email
// pattern, e.g. logo@2x.png.
var ignoredEmailSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}

// Ensure ContactService implements storeinsight.ContactService.
var _ storeinsight.ContactService = (*ContactService)(nil)

// ContactService extracts emails, phone numbers, a physical address and
// support hours from the homepage and, when the homepage yields nothing, a
// dedicated contact page.
type ContactService struct {
	fetcher storeinsight.Fetcher
}

// NewContactService creates a ContactService.
func NewContactService(fetcher storeinsight.Fetcher) *ContactService {
	return &ContactService{fetcher: fetcher}
}

// ContactDetails scans the homepage HTML first. If nothing turns up it tries
// dedicated contact pages. Extraction is best-effort; it degrades to zero
// details rather than failing.
func (s *ContactService) ContactDetails(ctx context.Context, homepageHTML, websiteURL string) storeinsight.ContactDetails {
	details := parseContactDetails(homepageHTML)
	if details.Count() > 0 {
		return details
	}

	for _, slug := range contactSlugs {
		if ctx.Err() != nil {
			return storeinsight.ContactDetails{}
		}

		body, err := s.fetcher.Fetch(ctx, websiteURL+slug)
		if err != nil {
			continue
		}

		if details = parseContactDetails(body); details.Count() > 0 {
			return details
		}
	}

	return storeinsight.ContactDetails{}
}

func parseContactDetails(html string) storeinsight.ContactDetails {
	var details storeinsight.ContactDetails
	doc := parse(html)
	if doc == nil {
		return details
	}

	details.Emails = findEmails(doc, html)
	details.PhoneNumbers = findPhones(doc)
	details.Address = findAddress(doc)
	details.SupportHours = findSupportHours(doc)
	return details
}

// findEmails prefers mailto: links and falls back to scanning visible text.
func findEmails(doc *goquery.Document, html string) []string {
	var emails []string
	seen := make(map[string]bool)

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] || len(emails) >= maxEmails {
			return
		}
		for _, suffix := range ignoredEmailSuffixes {
			if strings.HasSuffix(email, suffix) {
				return
			}
		}
		seen[email] = true
		emails = append(emails, email)
	}

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		add(addr)
	})

	for _, match := range emailRe.FindAllString(doc.Text(), -1) {
		add(match)
	}

	return emails
}

// findPhones prefers tel: links and falls back to text matching footer and
// contact sections, where phone-shaped numbers are least likely to be order
// numbers or SKUs.
func findPhones(doc *goquery.Document) []string {
	var phones []string
	seen := make(map[string]bool)

	add := func(phone string) {
		phone = strings.TrimSpace(phone)
		if phone == "" || seen[phone] || len(phones) >= maxPhones {
			return
		}
		seen[phone] = true
		phones = append(phones, phone)
	}

	doc.Find(`a[href^="tel:"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		add(strings.TrimPrefix(href, "tel:"))
	})

	doc.Find("footer, .contact, .contact-info, address").Each(func(_ int, sel *goquery.Selection) {
		for _, match := range phoneRe.FindAllString(sel.Text(), -1) {
			add(match)
		}
	})

	return phones
}

func findAddress(doc *goquery.Document) string {
	addr := doc.Find("address").First()
	if addr.Length() > 0 {
		return collapseSpace(addr.Text())
	}
	sel := doc.Find(".address, .store-address, [itemprop=address]").First()
	if sel.Length() > 0 {
		return collapseSpace(sel.Text())
	}
	return ""
}

func findSupportHours(doc *goquery.Document) string {
	sel := doc.Find(".hours, .support-hours, .opening-hours, [itemprop=openingHours]").First()
	if sel.Length() > 0 {
		return collapseSpace(sel.Text())
	}

	var hours string
	doc.Find("p, li, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseSpace(s.Text())
		lower := strings.ToLower(text)
		if len(text) < 120 && (strings.Contains(lower, "mon-fri") || strings.Contains(lower, "monday to friday") || strings.Contains(lower, "business hours")) {
			hours = text
			return false
		}
		return true
	})
	return hours
}
