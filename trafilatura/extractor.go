// Package trafilatura extracts the main text content from web pages using
// the go-trafilatura library.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/storeinsight"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements storeinsight.TextExtractor at compile time.
var _ storeinsight.TextExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main text out of raw HTML,
// discarding navigation, headers and boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Text returns the page title and its main text content.
func (e *Extractor) Text(rawHTML string) (string, string, error) {
	if rawHTML == "" {
		return "", "", storeinsight.Errorf(storeinsight.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", storeinsight.Errorf(storeinsight.EINTERNAL, "extract text: %v", err)
	}

	return result.Metadata.Title, strings.TrimSpace(result.ContentText), nil
}
