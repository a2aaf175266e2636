package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/outreach-group/faculty-cli/internal/adapter"
	"github.com/outreach-group/faculty-cli/internal/config"
	"github.com/outreach-group/faculty-cli/internal/fetcher"
	"github.com/outreach-group/faculty-cli/internal/model"
)

// Walker iterates a source's listing pages until pagination ends, collecting
// every candidate exactly once.
type Walker struct {
	fetcher  fetcher.Fetcher
	maxPages int
}

// NewWalker creates a Walker. maxPages is the hard page-count ceiling per
// source; zero means the default of 50.
func NewWalker(f fetcher.Fetcher, maxPages int) *Walker {
	if maxPages <= 0 {
		maxPages = 50
	}
	return &Walker{fetcher: f, maxPages: maxPages}
}

// Walk fetches and parses listing pages for one source. On a mid-walk fetch
// or parse failure, candidates accumulated so far are returned along with the
// error; the caller keeps the partial results and isolates the failure to
// this source.
func (w *Walker) Walk(ctx context.Context, src config.Source) ([]model.Candidate, error) {
	ad, err := adapter.ForSource(src.ID)
	if err != nil {
		return nil, err
	}

	var candidates []model.Candidate
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	pageURL := src.ListingURL

	for page := 0; page < w.maxPages && pageURL != ""; page++ {
		if visited[pageURL] {
			break
		}
		visited[pageURL] = true

		fetched, err := w.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return candidates, eris.Wrapf(err, "walk %s: fetch page %d", src.ID, page+1)
		}

		listing, err := ad.ParseListing(fetched.Body, pageURL)
		if err != nil {
			return candidates, eris.Wrapf(err, "walk %s: parse page %d", src.ID, page+1)
		}

		added := 0
		for _, c := range listing.Candidates {
			key := normalizeKey(c.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			// Paged listing URLs collapse to the base listing address so
			// merged records cite one source per listing, not one per page.
			c.DepartmentSource = src.ListingURL
			candidates = append(candidates, c)
			added++
		}

		zap.L().Debug("walked listing page",
			zap.String("source", src.ID),
			zap.String("url", pageURL),
			zap.Int("candidates", added),
		)

		// A further page that contributes nothing new ends the walk.
		if page > 0 && added == 0 {
			break
		}

		pageURL = listing.NextPage
	}

	return candidates, nil
}
