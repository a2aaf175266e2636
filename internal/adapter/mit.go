package adapter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// MITDMSE handles the MIT Department of Materials Science & Engineering site:
// a single listing page of profile cards, and profile pages with a "Contact
// Info" block and a "Key Publications" section.
type MITDMSE struct{}

func (a *MITDMSE) ID() string { return "mit_dmse" }

var mitRanks = []string{
	"Associate Professor",
	"Assistant Professor",
	"Department Head",
	"Professor",
}

func (a *MITDMSE) ParseListing(body, baseURL string) (*Listing, error) {
	doc, err := parseDoc(body, baseURL)
	if err != nil {
		return nil, err
	}

	listing := &Listing{}
	seen := make(map[string]bool)
	doc.Find(`a[href*="/people/faculty/"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		// Skip links back to the index itself.
		if strings.HasSuffix(strings.TrimRight(href, "/"), "/people/faculty") {
			return
		}

		name := cleanText(strings.SplitN(link.Text(), "\n", 2)[0])
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
			Title:            a.cardTitle(link),
			DepartmentSource: baseURL,
			ProfileURL:       absURL(baseURL, href),
		})
	})

	if len(listing.Candidates) == 0 {
		return nil, &ParseError{URL: baseURL, Detail: "no faculty profile links"}
	}

	return listing, nil
}

// cardTitle scans the card containing the link for a known MIT rank, longest
// match first so "Associate Professor" is not reported as "Professor".
func (a *MITDMSE) cardTitle(link *goquery.Selection) string {
	card := link.Closest("li, article, div")
	if card.Length() > 0 {
		text := card.Text()
		for _, rank := range mitRanks {
			if strings.Contains(text, rank) {
				return rank
			}
		}
	}
	return "Professor"
}

func (a *MITDMSE) ParseProfile(body, finalURL string) (*model.ProfileFields, error) {
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

	// Contact Info block: the section whose heading names it.
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(h.Text()), "contact") {
			if block := h.Closest("section, div"); block.Length() > 0 {
				fields.ContactText = append(fields.ContactText, cleanText(block.Text()))
			}
			return false
		}
		return true
	})

	// Key Publications section.
	var pubSection *goquery.Selection
	doc.Find("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		lower := strings.ToLower(h.Text())
		if strings.Contains(lower, "key publication") || strings.Contains(lower, "publication") {
			pubSection = h.Closest("section, div")
			return false
		}
		return true
	})
	if pubSection != nil && pubSection.Length() > 0 {
		fields.TopPublications = collectPublications(pubSection.Find("li"))
	}

	return fields, nil
}
