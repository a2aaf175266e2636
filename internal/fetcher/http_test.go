package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastOptions keeps the politeness delay out of test runtime.
func fastOptions() HTTPOptions {
	return HTTPOptions{
		DelayMin: time.Millisecond,
		DelayMax: 2 * time.Millisecond,
		HostRPS:  1000,
		Timeout:  5 * time.Second,
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>Jane Doe</body></html>"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(fastOptions())
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, page.RequestedURL)
	assert.Equal(t, 200, page.StatusCode)
	assert.Contains(t, page.Body, "Jane Doe")
	assert.False(t, page.FetchedAt.IsZero())
	assert.Equal(t, int64(1), f.Requests())
}

func TestHTTPFetcher_RetryThenSucceed(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.MaxRetries = 2
	f := NewHTTPFetcher(opts)

	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, page.Body, "ok")
	assert.Equal(t, int64(2), hits.Load())
	assert.Equal(t, int64(2), f.Requests())
}

func TestHTTPFetcher_RetryBudgetExhausted(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.MaxRetries = 2
	f := NewHTTPFetcher(opts)

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, srv.URL, fe.URL)

	// Initial attempt plus two retries, no more.
	assert.Equal(t, int64(3), hits.Load())
}

func TestHTTPFetcher_RedirectRecorded(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>final</html>"))
	}))
	defer target.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/profile", http.StatusFound)
	}))
	defer origin.Close()

	f := NewHTTPFetcher(fastOptions())
	page, err := f.Fetch(context.Background(), origin.URL)
	require.NoError(t, err)

	assert.Equal(t, origin.URL, page.RequestedURL)
	assert.Equal(t, target.URL+"/profile", page.FinalURL)
	assert.Contains(t, page.Body, "final")
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	f := NewHTTPFetcher(HTTPOptions{
		DelayMin: time.Second,
		DelayMax: 3 * time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := f.Fetch(ctx, "http://localhost:1/never")
	require.Error(t, err)
	// Cancellation wins before the politeness delay elapses.
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int64(0), f.Requests())
}

func TestHTTPFetcher_DelayBeforeEveryAttempt(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.DelayMin = 30 * time.Millisecond
	opts.DelayMax = 31 * time.Millisecond
	opts.MaxRetries = 2
	f := NewHTTPFetcher(opts)

	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	// Three attempts, each preceded by at least DelayMin.
	assert.Equal(t, int64(3), hits.Load())
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestDecodeBody(t *testing.T) {
	// ISO-8859-1 é is byte 0xE9.
	decoded, err := decodeBody([]byte{0x4a, 0x6f, 0x73, 0xE9}, "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "José", decoded)

	passthrough, err := decodeBody([]byte("plain"), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "plain", passthrough)

	missing, err := decodeBody([]byte("plain"), "")
	require.NoError(t, err)
	assert.Equal(t, "plain", missing)

	_, err = decodeBody([]byte("x"), "text/html; charset=no-such-charset")
	assert.Error(t, err)
}
