package adapter

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// StanfordProfiles handles profiles.stanford.edu, the central profile host
// that department profile links frequently redirect to. Email lives in a
// sidebar widget and publications sit behind a tab fragment that is still
// present in the served markup.
type StanfordProfiles struct{}

func (a *StanfordProfiles) ID() string { return "stanford_profiles" }

// ParseListing is unused: profiles.stanford.edu is only ever reached through
// profile redirects, never configured as a listing source.
func (a *StanfordProfiles) ParseListing(body, baseURL string) (*Listing, error) {
	return nil, &ParseError{URL: baseURL, Detail: "stanford profiles is not a listing source"}
}

func (a *StanfordProfiles) ParseProfile(body, finalURL string) (*model.ProfileFields, error) {
	doc, err := parseDoc(body, finalURL)
	if err != nil {
		return nil, err
	}

	fields := &model.ProfileFields{
		EmailRaw:          mailtoAddress(doc),
		AssistantEmail:    assistantEmail(doc),
		Phone:             phoneNumber(doc),
		GoogleScholar:     scholarLink(doc),
		LabWebsite:        labLink(doc, finalURL),
		ResearchInterests: researchInterests(doc),
	}

	// Sidebar contact widget; email here is often obfuscated rather than a
	// mailto, so the raw text goes to the resolver.
	doc.Find("aside, div[class*=sidebar], div[class*=contact], section[class*=contact]").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			fields.ContactText = append(fields.ContactText, text)
		}
	})

	// Publications tab: anchored by fragment id or a "Publications" heading.
	pubs := doc.Find("#publications, section[id*=publication], div[id*=publication]").First()
	if pubs.Length() == 0 {
		pubs = publicationSection(doc)
	}
	fields.TopPublications = collectPublications(pubs.Find("li"))

	return fields, nil
}
