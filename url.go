package storeinsight

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a website URL to scheme+host with a lowercase
// host and no trailing slash or path. A missing scheme defaults to https.
// Returns an EINVALID error for non-http(s) schemes or URLs without a host;
// validation happens before any network call.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "website URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "malformed website URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	host := strings.ToLower(u.Host)
	if host == "" || strings.HasPrefix(host, ".") {
		return "", Errorf(EINVALID, "website URL %q has no host", raw)
	}

	return u.Scheme + "://" + host, nil
}

// Domain returns the host portion of a URL, lowercased. Returns "" when the
// URL cannot be parsed.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
