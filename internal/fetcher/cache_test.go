package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outreach-group/faculty-cli/internal/model"
)

type memCache struct {
	pages   map[string]*model.Page
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func (c *memCache) GetCachedPage(_ context.Context, url string) (*model.Page, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.pages[url], nil
}

func (c *memCache) SetCachedPage(_ context.Context, page *model.Page, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.pages[page.RequestedURL] = page
	c.lastTTL = ttl
	return nil
}

type stubFetcher struct {
	page  *model.Page
	err   error
	calls int64
}

func (s *stubFetcher) Fetch(context.Context, string) (*model.Page, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *stubFetcher) Requests() int64 { return s.calls }

func TestCachingFetcher_MissThenHit(t *testing.T) {
	page := &model.Page{RequestedURL: "https://example.edu/p", FinalURL: "https://example.edu/p", Body: "x"}
	inner := &stubFetcher{page: page}
	cache := &memCache{pages: make(map[string]*model.Page)}

	f := NewCaching(inner, cache, time.Hour)

	got, err := f.Fetch(context.Background(), "https://example.edu/p")
	require.NoError(t, err)
	assert.Equal(t, page, got)
	assert.Equal(t, int64(1), inner.calls)
	assert.Equal(t, time.Hour, cache.lastTTL)

	// Second fetch is served from cache without touching the network.
	got, err = f.Fetch(context.Background(), "https://example.edu/p")
	require.NoError(t, err)
	assert.Equal(t, page, got)
	assert.Equal(t, int64(1), inner.calls)
}

func TestCachingFetcher_LookupErrorFallsThrough(t *testing.T) {
	page := &model.Page{RequestedURL: "https://example.edu/p", Body: "x"}
	inner := &stubFetcher{page: page}
	cache := &memCache{pages: make(map[string]*model.Page), getErr: errors.New("db locked")}

	f := NewCaching(inner, cache, time.Hour)
	got, err := f.Fetch(context.Background(), "https://example.edu/p")
	require.NoError(t, err)
	assert.Equal(t, page, got)
	assert.Equal(t, int64(1), inner.calls)
}

func TestCachingFetcher_FetchErrorNotCached(t *testing.T) {
	inner := &stubFetcher{err: errors.New("boom")}
	cache := &memCache{pages: make(map[string]*model.Page)}

	f := NewCaching(inner, cache, time.Hour)
	_, err := f.Fetch(context.Background(), "https://example.edu/p")
	require.Error(t, err)
	assert.Empty(t, cache.pages)
}

func TestCachingFetcher_DefaultTTL(t *testing.T) {
	page := &model.Page{RequestedURL: "https://example.edu/p"}
	cache := &memCache{pages: make(map[string]*model.Page)}

	f := NewCaching(&stubFetcher{page: page}, cache, 0)
	_, err := f.Fetch(context.Background(), "https://example.edu/p")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cache.lastTTL)
}
