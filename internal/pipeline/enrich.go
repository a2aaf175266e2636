package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/outreach-group/faculty-cli/internal/adapter"
	"github.com/outreach-group/faculty-cli/internal/email"
	"github.com/outreach-group/faculty-cli/internal/fetcher"
	"github.com/outreach-group/faculty-cli/internal/model"
)

// EnrichError wraps whatever failed while enriching a single candidate. The
// batch continues past it.
type EnrichError struct {
	ProfileURL string
	Cause      error
}

func (e *EnrichError) Error() string {
	return fmt.Sprintf("enrich %s: %v", e.ProfileURL, e.Cause)
}

func (e *EnrichError) Unwrap() error { return e.Cause }

// Enricher visits a candidate's profile page and fills in contact, lab and
// publication fields.
type Enricher struct {
	fetcher fetcher.Fetcher
	maxPubs int
}

// NewEnricher creates an Enricher. maxPubs bounds the publication list; zero
// means the default of 5.
func NewEnricher(f fetcher.Fetcher, maxPubs int) *Enricher {
	if maxPubs <= 0 {
		maxPubs = 5
	}
	return &Enricher{fetcher: f, maxPubs: maxPubs}
}

// Enrich fetches the candidate's profile, dispatches the adapter variant by
// resolved domain, resolves the email, and bounds the publication list.
// sourceID names the listing the candidate came from; it selects the origin
// adapter used when no cross-domain redirect intervenes.
func (e *Enricher) Enrich(ctx context.Context, sourceID string, c model.Candidate) (*model.FacultyRecord, error) {
	origin, err := adapter.ForSource(sourceID)
	if err != nil {
		origin = &adapter.Generic{}
	}

	page, err := e.fetcher.Fetch(ctx, c.ProfileURL)
	if err != nil {
		return nil, &EnrichError{ProfileURL: c.ProfileURL, Cause: err}
	}

	variant := adapter.ForProfile(origin, page.RequestedURL, page.FinalURL)

	fields, err := variant.ParseProfile(page.Body, page.FinalURL)
	if err != nil {
		return nil, &EnrichError{ProfileURL: c.ProfileURL, Cause: err}
	}

	record := &model.FacultyRecord{
		Candidate:         c,
		AssistantEmail:    fields.AssistantEmail,
		Phone:             fields.Phone,
		LabWebsite:        fields.LabWebsite,
		GoogleScholar:     fields.GoogleScholar,
		ResearchInterests: fields.ResearchInterests,
		TopPublications:   boundPublications(fields.TopPublications, e.maxPubs),
	}

	if fields.EmailRaw != "" {
		record.Email = fields.EmailRaw
	} else {
		record.Email = email.Resolve(fields.ContactText)
	}

	return record, nil
}

// boundPublications drops blank entries and truncates to the first limit
// titles, preserving page order. Short lists stay as they are; there is no
// padding.
func boundPublications(pubs []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, p := range pubs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
