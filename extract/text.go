package extract

import "github.com/fwojciec/storeinsight"

// Ensure FallbackTextExtractor implements storeinsight.TextExtractor.
var _ storeinsight.TextExtractor = (*FallbackTextExtractor)(nil)

// FallbackTextExtractor tries the primary extractor first and falls back to
// the secondary when the primary errors or yields no text. Policy and about
// pages on heavily themed stores sometimes defeat one extractor but not the
// other.
type FallbackTextExtractor struct {
	Primary   storeinsight.TextExtractor
	Secondary storeinsight.TextExtractor
}

// Text returns the page title and main text from the first extractor that
// produces a non-empty result.
func (e *FallbackTextExtractor) Text(html string) (string, string, error) {
	title, text, err := e.Primary.Text(html)
	if err == nil && text != "" {
		return title, text, nil
	}
	if e.Secondary == nil {
		return title, text, err
	}
	return e.Secondary.Text(html)
}
