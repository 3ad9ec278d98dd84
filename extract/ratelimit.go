package extract

import (
	"context"
	"sync"

	"github.com/fwojciec/storeinsight"
	"golang.org/x/time/rate"
)

var _ storeinsight.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so requests to different stores proceed
// independently while requests within one store are paced.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter with the given requests per
// second limit. Each domain's limiter has a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain. Returns
// an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ storeinsight.Fetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher decorates a Fetcher with per-domain pacing. Every
// fetch, including the extractors' follow-up page fetches, waits for the
// target domain's token before going out.
type RateLimitedFetcher struct {
	fetcher storeinsight.Fetcher
	limiter storeinsight.DomainLimiter
}

// NewRateLimitedFetcher wraps fetcher with limiter.
func NewRateLimitedFetcher(fetcher storeinsight.Fetcher, limiter storeinsight.DomainLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{fetcher: fetcher, limiter: limiter}
}

func (f *RateLimitedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx, storeinsight.Domain(url)); err != nil {
		return "", err
	}
	return f.fetcher.Fetch(ctx, url)
}

func (f *RateLimitedFetcher) Close() error {
	return f.fetcher.Close()
}
