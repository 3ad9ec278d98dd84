// Package readability extracts main page text using go-readability. It is
// the fallback for pages whose structure defeats the primary extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/storeinsight"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements storeinsight.TextExtractor at compile time.
var _ storeinsight.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Text returns the page title and main text content.
func (e *Extractor) Text(rawHTML string) (string, string, error) {
	if rawHTML == "" {
		return "", "", storeinsight.Errorf(storeinsight.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", "", storeinsight.Errorf(storeinsight.EINTERNAL, "readability extraction failed: %v", err)
	}

	return article.Title, strings.TrimSpace(article.TextContent), nil
}
