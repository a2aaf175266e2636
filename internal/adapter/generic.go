package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// Generic is the best-effort fallback for profile pages on unrecognized
// domains: it hands the whole page text to the email resolver and looks for a
// bulleted list near a heading containing "Publication".
type Generic struct{}

func (a *Generic) ID() string { return "generic" }

// ParseListing is a permissive sweep over main-content profile-shaped links.
// Configured sources all have dedicated adapters, so this only serves tests
// and ad-hoc source experiments.
func (a *Generic) ParseListing(body, baseURL string) (*Listing, error) {
	doc, err := parseDoc(body, baseURL)
	if err != nil {
		return nil, err
	}

	scope := doc.Find("main").First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	listing := &Listing{}
	seen := make(map[string]bool)
	scope.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !profileHref(href) {
			return
		}
		name := cleanText(link.Text())
		if !ValidName(name) {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		listing.Candidates = append(listing.Candidates, model.Candidate{
			Name:             name,
			Title:            "Professor",
			DepartmentSource: baseURL,
			ProfileURL:       absURL(baseURL, href),
		})
	})

	return listing, nil
}

func (a *Generic) ParseProfile(body, finalURL string) (*model.ProfileFields, error) {
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
		ContactText:       []string{cleanText(doc.Text())},
	}

	fields.TopPublications = collectPublications(publicationSection(doc).Find("li"))

	return fields, nil
}
