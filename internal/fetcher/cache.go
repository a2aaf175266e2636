package fetcher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// PageCache is the slice of the store the caching fetcher needs.
type PageCache interface {
	GetCachedPage(ctx context.Context, url string) (*model.Page, error)
	SetCachedPage(ctx context.Context, page *model.Page, ttl time.Duration) error
}

// CachingFetcher serves pages from the store's TTL cache before hitting the
// network. Cache hits skip the politeness delay since no request leaves the
// process.
type CachingFetcher struct {
	inner Fetcher
	cache PageCache
	ttl   time.Duration
}

// NewCaching wraps inner with a store-backed page cache.
func NewCaching(inner Fetcher, cache PageCache, ttl time.Duration) *CachingFetcher {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachingFetcher{inner: inner, cache: cache, ttl: ttl}
}

func (f *CachingFetcher) Requests() int64 { return f.inner.Requests() }

func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*model.Page, error) {
	cached, err := f.cache.GetCachedPage(ctx, url)
	if err != nil {
		zap.L().Warn("page cache lookup failed", zap.String("url", url), zap.Error(err))
	}
	if cached != nil {
		zap.L().Debug("page cache hit", zap.String("url", url))
		return cached, nil
	}

	page, err := f.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if cacheErr := f.cache.SetCachedPage(ctx, page, f.ttl); cacheErr != nil {
		zap.L().Warn("page cache store failed", zap.String("url", url), zap.Error(cacheErr))
	}
	return page, nil
}
