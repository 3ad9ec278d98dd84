package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeinsight"
)

// linkIntent pairs an ImportantLinks field with the keywords that match it.
// Keywords are checked against both the link text and the href path.
type linkIntent struct {
	field    func(*storeinsight.ImportantLinks) *string
	keywords []string
}

var linkIntents = []linkIntent{
	{func(l *storeinsight.ImportantLinks) *string { return &l.OrderTracking }, []string{"track", "order status", "order-status", "tracking"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.ContactUs }, []string{"contact"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.Blogs }, []string{"blog", "/blogs/", "journal", "news"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.SizeGuide }, []string{"size guide", "size-guide", "sizing", "size chart", "size-chart"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.ShippingInfo }, []string{"shipping", "delivery"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.Careers }, []string{"career", "jobs", "join us", "join-us", "we're hiring"}},
	{func(l *storeinsight.ImportantLinks) *string { return &l.AboutUs }, []string{"about"}},
}

// Ensure LinkExtractor implements storeinsight.LinkExtractor.
var _ storeinsight.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor classifies homepage navigation links into a fixed set of
// intents by keyword matching on link text and URL path.
type LinkExtractor struct{}

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ImportantLinks scans all anchors and fills each intent slot with the first
// matching link, resolved against websiteURL. Unmatched slots stay empty.
func (e *LinkExtractor) ImportantLinks(homepageHTML, websiteURL string) storeinsight.ImportantLinks {
	var links storeinsight.ImportantLinks
	doc := parse(homepageHTML)
	if doc == nil {
		return links
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(websiteURL, href)
		if resolved == "" {
			return
		}

		text := strings.ToLower(collapseSpace(sel.Text()))
		path := strings.ToLower(resolved)

		for _, intent := range linkIntents {
			slot := intent.field(&links)
			if *slot != "" {
				continue
			}
			if matchesIntent(text, path, intent.keywords) {
				*slot = resolved
				break
			}
		}
	})

	return links
}

func matchesIntent(text, path string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) || strings.Contains(path, strings.ReplaceAll(kw, " ", "-")) {
			return true
		}
	}
	return false
}
