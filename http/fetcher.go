// Package http provides the HTTP-based page retriever and sitemap page
// discovery used by the extraction pipeline.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/storeinsight"
	"golang.org/x/sync/semaphore"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 10 * time.Second

// DefaultHostConcurrency is the default per-host concurrency ceiling.
const DefaultHostConcurrency = 4

// DefaultUserAgent identifies the extractor to target stores.
const DefaultUserAgent = "Mozilla/5.0 (compatible; storeinsight/1.0)"

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s.
// With the initial attempt this gives 3 attempts total.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// Ensure Fetcher implements storeinsight.Fetcher at compile time.
var _ storeinsight.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content over HTTP. It enforces a per-host
// concurrency ceiling and a per-call timeout, retries transient failures
// (connect errors, 5xx, 403/429) with exponential backoff, and classifies
// terminal failures with storeinsight error codes. It does not execute
// JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	delays    []time.Duration
	userAgent string
	hostLimit int64

	mu    sync.Mutex
	hosts map[string]*semaphore.Weighted
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the backoff delays between retries. An empty slice
// disables retries. Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHostConcurrency sets the maximum number of in-flight requests per host.
func WithHostConcurrency(n int) Option {
	return func(f *Fetcher) {
		f.hostLimit = int64(n)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		delays:    DefaultRetryDelays(),
		userAgent: DefaultUserAgent,
		hostLimit: DefaultHostConcurrency,
		hosts:     make(map[string]*semaphore.Weighted),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body at rawURL. Malformed and non-http(s) URLs are
// rejected with EINVALID before any network call.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", storeinsight.Errorf(storeinsight.EINVALID, "malformed URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", storeinsight.Errorf(storeinsight.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", storeinsight.Errorf(storeinsight.EINVALID, "URL %q has no host", rawURL)
	}

	sem := f.hostSemaphore(u.Host)
	if err := sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer sem.Release(1)

	maxAttempts := len(f.delays) + 1

	var lastStatus int
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		body, status, err := f.do(ctx, rawURL)
		if err == nil && status == http.StatusOK {
			return body, nil
		}
		lastStatus, lastErr = status, err

		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue // connect error or timeout, retry
		}

		switch {
		case status == http.StatusForbidden || status == http.StatusTooManyRequests:
			continue // may be transient throttling, retry
		case status >= 500:
			continue
		default:
			// Remaining 4xx are persistent, no retry.
			return "", storeinsight.Errorf(storeinsight.ENOTFOUND, "HTTP %d for %s", status, rawURL)
		}
	}

	if lastErr != nil {
		return "", storeinsight.Errorf(storeinsight.ENOTFOUND, "failed to fetch %s after %d attempts: %v", rawURL, maxAttempts, lastErr)
	}
	if lastStatus == http.StatusForbidden || lastStatus == http.StatusTooManyRequests {
		return "", storeinsight.Errorf(storeinsight.EBLOCKED, "HTTP %d for %s after %d attempts", lastStatus, rawURL, maxAttempts)
	}
	return "", storeinsight.Errorf(storeinsight.ENOTFOUND, "HTTP %d for %s after %d attempts", lastStatus, rawURL, maxAttempts)
}

// do performs a single request attempt.
func (f *Fetcher) do(ctx context.Context, rawURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	return string(body), resp.StatusCode, nil
}

// hostSemaphore returns the concurrency semaphore for a host, creating it on
// first use.
func (f *Fetcher) hostSemaphore(host string) *semaphore.Weighted {
	host = strings.ToLower(host)

	f.mu.Lock()
	defer f.mu.Unlock()

	sem, ok := f.hosts[host]
	if !ok {
		sem = semaphore.NewWeighted(f.hostLimit)
		f.hosts[host] = sem
	}
	return sem
}

// Close releases resources. The underlying http.Client needs no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}
