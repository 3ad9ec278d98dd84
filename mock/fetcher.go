// Package mock provides hand-rolled mock implementations of the
// storeinsight interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/storeinsight"
)

var _ storeinsight.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of storeinsight.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ storeinsight.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of storeinsight.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

var _ storeinsight.PageDiscoverer = (*PageDiscoverer)(nil)

// PageDiscoverer is a mock implementation of storeinsight.PageDiscoverer.
type PageDiscoverer struct {
	DiscoverPagesFn func(ctx context.Context, websiteURL string) ([]string, error)
}

func (d *PageDiscoverer) DiscoverPages(ctx context.Context, websiteURL string) ([]string, error) {
	if d.DiscoverPagesFn == nil {
		return []string{}, nil
	}
	return d.DiscoverPagesFn(ctx, websiteURL)
}
