// Package bloom provides probabilistic URL deduplication for page
// discovery.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// URLSet tracks URLs seen during a discovery walk. Membership answers may
// have false positives but never false negatives, so a repeated URL is
// always recognized; the cost of a false positive is one skipped page.
type URLSet struct {
	f *bloom.BloomFilter
}

// NewURLSet creates a URLSet sized for n expected URLs with the given
// false positive rate.
func NewURLSet(n uint, fpRate float64) *URLSet {
	return &URLSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit marks the URL as seen and reports whether it had been seen before.
func (s *URLSet) Visit(url string) bool {
	return s.f.TestOrAddString(url)
}

// Seen returns true if the URL might have been visited.
// False positives are possible; false negatives are not.
func (s *URLSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs visited.
func (s *URLSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
