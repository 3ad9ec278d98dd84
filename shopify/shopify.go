// Package shopify implements the storefront platform driver: marker
// detection, the canonical products.json feed, and homepage hero-product
// selection.
package shopify

import "strings"

// markers are signatures that identify a storefront as running the platform.
// Any one of them is sufficient.
var markers = []string{
	"cdn.shopify.com",
	"cdn.shopifycdn.net",
	"myshopify.com",
	"Shopify.theme",
	"Shopify.shop",
	"shopify-digital-wallet",
	"shopify-checkout-api-token",
}

// Detector recognizes storefront platform markers in homepage HTML.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect reports whether the HTML carries a recognizable platform marker.
func (d *Detector) Detect(html string) bool {
	for _, m := range markers {
		if strings.Contains(html, m) {
			return true
		}
	}
	return false
}
