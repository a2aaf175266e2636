package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// StanfordDept handles the Stanford ChemE and MSE department sites. Both run
// the same Drupal people view: faculty links grouped under rank headers, no
// pagination, and profile pages with a bio body, an explicit "Lab" link, and
// usually a mailto.
type StanfordDept struct {
	id string
}

func (a *StanfordDept) ID() string { return a.id }

func (a *StanfordDept) ParseListing(body, baseURL string) (*Listing, error) {
	doc, err := parseDoc(body, baseURL)
	if err != nil {
		return nil, err
	}

	scope := doc.Find("div.view-people").First()
	if scope.Length() == 0 {
		scope = doc.Find("main").First()
	}
	if scope.Length() == 0 {
		return nil, &ParseError{URL: baseURL, Detail: "no people view or main content"}
	}

	listing := &Listing{}
	seen := make(map[string]bool)
	scope.Find(`a[href*="/people/"]`).Each(func(_ int, link *goquery.Selection) {
		name := cleanText(link.Text())
		if !ValidName(name) {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true

		title := nearbyTitle(link)
		if title == "" {
			title = sectionTitle(link, "Professor")
		}

		href, _ := link.Attr("href")
		listing.Candidates = append(listing.Candidates, model.Candidate{
			Name:             name,
			Title:            title,
			DepartmentSource: baseURL,
			ProfileURL:       absURL(baseURL, href),
		})
	})

	return listing, nil
}

func (a *StanfordDept) ParseProfile(body, finalURL string) (*model.ProfileFields, error) {
	doc, err := parseDoc(body, finalURL)
	if err != nil {
		return nil, err
	}

	fields := &model.ProfileFields{
		EmailRaw:          mailtoAddress(doc),
		AssistantEmail:    assistantEmail(doc),
		Phone:             phoneNumber(doc),
		GoogleScholar:     scholarLink(doc),
		ResearchInterests: researchInterests(doc),
	}

	// Explicit lab link first, generic keyword scan as fallback.
	if href, ok := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.EqualFold(cleanText(a.Text()), "lab") ||
			strings.Contains(strings.ToLower(a.Text()), "lab website")
	}).First().Attr("href"); ok {
		fields.LabWebsite = absURL(finalURL, href)
	} else {
		fields.LabWebsite = labLink(doc, finalURL)
	}

	doc.Find("div[class*=contact], aside, div[class*=sidebar]").Each(func(_ int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			fields.ContactText = append(fields.ContactText, text)
		}
	})
	if bio := doc.Find("div[class*=bio], div[class*=body]").First(); bio.Length() > 0 {
		fields.ContactText = append(fields.ContactText, cleanText(bio.Text()))
	}

	fields.TopPublications = collectPublications(publicationSection(doc).Find("li"))

	return fields, nil
}
