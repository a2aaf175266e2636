package fetcher

import (
	"context"
	"io"
	"math/rand/v2"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int

	// DelayMin/DelayMax bound the randomized politeness delay applied
	// before every request, retries included.
	DelayMin time.Duration
	DelayMax time.Duration

	// HostRPS is a hard per-host cap layered under the politeness delay.
	HostRPS rate.Limit
}

// HTTPFetcher implements Fetcher using net/http with a mandatory randomized
// inter-request delay, per-host rate limiting, and bounded retry.
type HTTPFetcher struct {
	client   *http.Client
	opts     HTTPOptions
	requests atomic.Int64

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 2
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "faculty-cli/1.0"
	}
	if opts.DelayMin == 0 && opts.DelayMax == 0 {
		opts.DelayMin = time.Second
		opts.DelayMax = 3 * time.Second
	}
	if opts.DelayMax < opts.DelayMin {
		opts.DelayMax = opts.DelayMin
	}
	if opts.HostRPS == 0 {
		opts.HostRPS = 1
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Requests returns the number of HTTP requests issued so far.
func (f *HTTPFetcher) Requests() int64 {
	return f.requests.Load()
}

func (f *HTTPFetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(f.opts.HostRPS, 1)
		f.limiters[host] = lim
	}
	return lim
}

// politeDelay sleeps a uniform random duration in [DelayMin, DelayMax],
// respecting context cancellation.
func (f *HTTPFetcher) politeDelay(ctx context.Context) error {
	d := f.opts.DelayMin
	if span := f.opts.DelayMax - f.opts.DelayMin; span > 0 {
		d += time.Duration(rand.Int64N(int64(span)))
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fetch performs a single GET with politeness delay and bounded retry.
// Redirects are followed by the underlying client; the final resolved URL is
// recorded on the returned page so callers can detect cross-domain hops.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*model.Page, error) {
	attempts := f.opts.MaxRetries + 1

	var lastErr error
	for attempt := range attempts {
		if err := f.politeDelay(ctx); err != nil {
			return nil, &FetchError{URL: rawURL, Cause: err}
		}
		if err := f.limiterFor(rawURL).Wait(ctx); err != nil {
			return nil, &FetchError{URL: rawURL, Cause: eris.Wrap(err, "rate limiter wait")}
		}

		page, err := f.doOnce(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		zap.L().Warn("fetch failed",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &FetchError{URL: rawURL, Cause: lastErr}
}

func (f *HTTPFetcher) doOnce(ctx context.Context, rawURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	f.requests.Add(1)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "do request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, eris.Errorf("http %d from %s", resp.StatusCode, rawURL)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read body")
	}

	body, err := decodeBody(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		// Undecodable charset: fall back to the raw bytes.
		zap.L().Warn("charset decode failed, using raw body",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		body = string(raw)
	}

	return &model.Page{
		RequestedURL: rawURL,
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		Body:         body,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

// decodeBody converts the response bytes to UTF-8 using the charset declared
// in the Content-Type header. Missing or UTF-8 charsets pass through.
func decodeBody(raw []byte, contentType string) (string, error) {
	if contentType == "" {
		return string(raw), nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(raw), nil
	}
	name := strings.ToLower(params["charset"])
	if name == "" || name == "utf-8" || name == "utf8" {
		return string(raw), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", eris.Wrapf(err, "lookup charset %s", name)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", eris.Wrapf(err, "decode charset %s", name)
	}
	return string(decoded), nil
}
