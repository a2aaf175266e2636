package fetcher

import (
	"context"
	"fmt"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// Fetcher defines the interface for retrieving a single page.
type Fetcher interface {
	// Fetch performs one GET and returns the page with its redirect state.
	// The politeness delay is applied before every request, retries included.
	Fetch(ctx context.Context, url string) (*model.Page, error)

	// Requests returns the number of HTTP requests issued so far, for
	// diagnostics only.
	Requests() int64
}

// FetchError is a transport-level failure (timeout, connection error, or a
// non-2xx status) that survived the retry budget.
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }
