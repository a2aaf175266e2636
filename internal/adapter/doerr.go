package adapter

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/outreach-group/faculty-cli/internal/model"
)

var nextTextRe = regexp.MustCompile(`(?i)^(next|›|»|next\s*page)`)

// StanfordDoerr handles the Doerr School of Sustainability community page.
// The listing spans multiple pages addressed by a ?page=N query parameter;
// profile links may point at department sites or at profiles.stanford.edu.
type StanfordDoerr struct{}

func (a *StanfordDoerr) ID() string { return "stanford_doerr" }

func (a *StanfordDoerr) ParseListing(body, baseURL string) (*Listing, error) {
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

		title := nearbyTitle(link)
		if title == "" {
			title = "Professor"
		}

		listing.Candidates = append(listing.Candidates, model.Candidate{
			Name:             name,
			Title:            title,
			DepartmentSource: baseURL,
			ProfileURL:       absURL(baseURL, href),
		})
	})

	listing.NextPage = a.nextPage(doc, baseURL)

	return listing, nil
}

// profileHref reports whether href looks like a faculty profile link.
func profileHref(href string) bool {
	lower := strings.ToLower(href)
	return strings.Contains(lower, "/person/") ||
		strings.Contains(lower, "/people/") ||
		strings.Contains(lower, "/faculty/") ||
		strings.Contains(lower, "profiles.stanford.edu")
}

// nextPage resolves pagination from the pager markup: a rel=next anchor or a
// "Next" link. No such anchor means the listing has ended, regardless of how
// many candidates the page produced. An anchor without a usable href
// advances the page query parameter instead.
func (a *StanfordDoerr) nextPage(doc *goquery.Document, pageURL string) string {
	href, ok := doc.Find(`a[rel="next"]`).First().Attr("href")
	if !ok {
		doc.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
			if !nextTextRe.MatchString(cleanText(link.Text())) {
				return true
			}
			href, _ = link.Attr("href")
			ok = true
			return false
		})
	}
	if !ok {
		return ""
	}
	if href == "" || href == "#" {
		return incrementPageParam(pageURL)
	}
	return absURL(pageURL, href)
}

func incrementPageParam(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	page := 0
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return ""
		}
	}
	q.Set("page", strconv.Itoa(page+1))
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseProfile covers Doerr-hosted profile pages. Cross-domain redirects to
// profiles.stanford.edu are dispatched elsewhere before this runs.
func (a *StanfordDoerr) ParseProfile(body, finalURL string) (*model.ProfileFields, error) {
	// Doerr profile pages share the department layout.
	dept := &StanfordDept{id: a.ID()}
	return dept.ParseProfile(body, finalURL)
}
