// Package adapter holds the per-site extraction strategies. The site set is
// fixed and known at design time, so variants form a closed registry keyed by
// source id for listings and by resolved domain for profiles.
package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// Listing is the result of parsing one listing page.
type Listing struct {
	Candidates []model.Candidate
	// NextPage is the absolute URL of the next listing page, or empty when
	// pagination ends.
	NextPage string
}

// ParseError is raised when a page lacks the structure an adapter expects.
// Content does not change on retry, so these are never retried.
type ParseError struct {
	URL    string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.URL, e.Detail)
}

// Adapter is one site-specific extraction strategy.
type Adapter interface {
	// ID returns the source identifier this adapter serves.
	ID() string

	// ParseListing extracts candidates from a listing page and resolves the
	// next page, if any. Relative profile links are resolved against baseURL.
	ParseListing(body, baseURL string) (*Listing, error)

	// ParseProfile extracts contact, lab and publication fields from a
	// profile page. finalURL is the post-redirect location of the page.
	ParseProfile(body, finalURL string) (*model.ProfileFields, error)
}

// ForSource returns the listing adapter registered for a source id.
func ForSource(id string) (Adapter, error) {
	switch id {
	case "stanford_cheme", "stanford_mse":
		return &StanfordDept{id: id}, nil
	case "stanford_doerr":
		return &StanfordDoerr{}, nil
	case "mit_dmse":
		return &MITDMSE{}, nil
	default:
		return nil, eris.Errorf("adapter: unknown source %q", id)
	}
}

// profileDomains maps known alternate profile-hosting domains to their
// adapters. A redirect landing on one of these switches extraction strategy
// regardless of which department listed the person.
func profileAdapterForHost(host string) Adapter {
	switch {
	case strings.EqualFold(host, "profiles.stanford.edu"):
		return &StanfordProfiles{}
	default:
		return nil
	}
}

// ForProfile selects the profile-parse variant. When the resolved host
// differs from the requested host and matches a known alternate layout, that
// layout's adapter wins. An unrecognized cross-domain hop falls back to the
// best-effort generic adapter; same-domain responses keep the originating
// source's adapter.
func ForProfile(origin Adapter, requestedURL, finalURL string) Adapter {
	reqHost := hostOf(requestedURL)
	finHost := hostOf(finalURL)
	if finHost == "" || strings.EqualFold(reqHost, finHost) {
		return origin
	}
	if alt := profileAdapterForHost(finHost); alt != nil {
		return alt
	}
	return &Generic{}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func parseDoc(body, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Detail: err.Error()}
	}
	return doc, nil
}
