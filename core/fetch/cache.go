package fetch

import (
	"context"
	"time"

	"github.com/gaurav-prasanna/stylepipe/core"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// CachingFetcher memoizes successful fetches in memory, so page discovery
// and extraction share one download of the main page.
type CachingFetcher struct {
	inner core.Fetcher
	cache *cache.Cache
}

// NewCaching wraps inner with an in-memory cache whose entries expire after ttl.
func NewCaching(inner core.Fetcher, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Fetch returns a cached result when present, otherwise delegates.
// Failures are never cached.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if v, ok := f.cache.Get(url); ok {
		if res, ok := v.(*core.FetchResult); ok {
			cp := *res
			return &cp, nil
		}
	}

	res, err := f.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	stored := *res
	f.cache.SetDefault(url, &stored)
	return res, nil
}

// RateLimitedFetcher caps the request rate of an inner fetcher.
type RateLimitedFetcher struct {
	inner   core.Fetcher
	limiter *rate.Limiter
}

// NewRateLimited allows perSecond requests with a burst of burst.
func NewRateLimited(inner core.Fetcher, perSecond float64, burst int) *RateLimitedFetcher {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Fetch waits for a token, then delegates.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return f.inner.Fetch(ctx, url)
}
