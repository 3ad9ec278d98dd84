// Package goquery provides HTML content extractors built on
// github.com/PuerkitoBio/goquery: policies, FAQs, contact details, social
// handles, important links, and the brand name. Extractors are side-effect
// free with respect to their input pages; a page that cannot be parsed is
// treated the same as a page where nothing was found.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parse wraps goquery document construction. A nil document means the HTML
// could not be parsed at all.
func parse(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

// resolveURL resolves href against websiteURL. Returns "" for unusable hrefs
// (fragments, javascript:, mailto:, unparseable).
func resolveURL(websiteURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return ""
	}

	base, err := url.Parse(websiteURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// collapseSpace normalizes runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
