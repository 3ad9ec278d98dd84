package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storeinsight"
)

// socialHosts maps platform domains to the matching SocialHandles field.
var socialHosts = map[string]func(*storeinsight.SocialHandles) *string{
	"instagram.com": func(h *storeinsight.SocialHandles) *string { return &h.Instagram },
	"facebook.com":  func(h *storeinsight.SocialHandles) *string { return &h.Facebook },
	"twitter.com":   func(h *storeinsight.SocialHandles) *string { return &h.Twitter },
	"x.com":         func(h *storeinsight.SocialHandles) *string { return &h.Twitter },
	"tiktok.com":    func(h *storeinsight.SocialHandles) *string { return &h.TikTok },
	"youtube.com":   func(h *storeinsight.SocialHandles) *string { return &h.YouTube },
	"linkedin.com":  func(h *storeinsight.SocialHandles) *string { return &h.LinkedIn },
	"pinterest.com": func(h *storeinsight.SocialHandles) *string { return &h.Pinterest },
}

// nonHandlePaths are first path segments that never identify an account.
var nonHandlePaths = map[string]bool{
	"sharer":  true,
	"share":   true,
	"intent":  true,
	"search":  true,
	"explore": true,
	"watch":   true,
	"videos":  true,
	"pages":   true,
	"hashtag": true,
	"pin":     true,
	"embed":   true,
}

// Ensure SocialExtractor implements storeinsight.SocialExtractor.
var _ storeinsight.SocialExtractor = (*SocialExtractor)(nil)

// SocialExtractor finds social platform links in homepage HTML and
// normalizes each to a bare account handle.
type SocialExtractor struct{}

// NewSocialExtractor creates a SocialExtractor.
func NewSocialExtractor() *SocialExtractor {
	return &SocialExtractor{}
}

// SocialHandles scans all anchors for links to known platforms. The first
// link found for each platform wins. Links that do not resolve to an account
// handle are skipped.
func (e *SocialExtractor) SocialHandles(homepageHTML string) storeinsight.SocialHandles {
	var handles storeinsight.SocialHandles
	doc := parse(homepageHTML)
	if doc == nil {
		return handles
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		host, handle := NormalizeSocialURL(href)
		if handle == "" {
			return
		}
		field, ok := socialHosts[host]
		if !ok {
			return
		}
		if slot := field(&handles); *slot == "" {
			*slot = handle
		}
	})

	return handles
}

// NormalizeSocialURL parses a social link and returns the canonical platform
// host and the account handle. Scheme-less inputs are accepted. Returns empty
// strings when the URL does not point at a known platform account.
func NormalizeSocialURL(rawURL string) (host, handle string) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}

	h := strings.ToLower(u.Hostname())
	h = strings.TrimPrefix(h, "www.")
	if _, ok := socialHosts[h]; !ok {
		return "", ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", ""
	}

	first := strings.ToLower(segments[0])
	if nonHandlePaths[first] {
		return "", ""
	}

	// YouTube channels use /@name, /c/name or /channel/id.
	switch first {
	case "c", "channel", "user", "company", "in":
		if len(segments) < 2 || segments[1] == "" {
			return "", ""
		}
		return h, strings.TrimPrefix(segments[1], "@")
	}

	return h, strings.TrimPrefix(segments[0], "@")
}
