package adapter

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// invalidNames lists navigation links and section headers that surface where
// person names are expected on listing pages.
var invalidNames = []string{
	"courtesy appointments",
	"emeritus",
	"emerita",
	"lecturer",
	"lecturers",
	"staff",
	"faculty in memoriam",
	"in memoriam",
	"visiting faculty",
	"adjunct",
	"by courtesy",
	"graduate students",
	"postdocs",
	"research scientists",
	"administrative",
	"incoming",
	"faculty",
	"people",
	"all",
	"view",
}

var suspiciousTokens = []string{"http", "www", ".com", ".edu", "click", "more", "view all"}

var spaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// ValidName reports whether s looks like a person name rather than a
// navigation link or section header.
func ValidName(s string) bool {
	name := strings.ToLower(cleanText(s))
	if len(name) < 3 {
		return false
	}
	for _, invalid := range invalidNames {
		if name == invalid || strings.HasPrefix(name, invalid+" ") {
			return false
		}
	}
	words := strings.Fields(name)
	// Single very long words are section headers or slugs, not names.
	if len(words) == 1 && len(words[0]) > 15 {
		return false
	}
	for _, tok := range suspiciousTokens {
		if strings.Contains(name, tok) {
			return false
		}
	}
	return true
}

// absURL resolves href against base. Unparseable inputs return href as-is.
func absURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

// sectionTitle walks backwards from sel to the nearest h2/h3 header whose
// text names a rank, falling back to fallback.
func sectionTitle(sel *goquery.Selection, fallback string) string {
	header := sel.PrevAllFiltered("h2, h3").First()
	if header.Length() == 0 {
		header = sel.Closest("div, section, article").PrevAllFiltered("h2, h3").First()
	}
	if header.Length() > 0 {
		text := cleanText(header.Text())
		lower := strings.ToLower(text)
		if strings.Contains(lower, "professor") || strings.Contains(lower, "chair") || strings.Contains(lower, "head") {
			return text
		}
	}
	return fallback
}

// nearbyTitle looks for an explicit title/role element inside the card
// containing sel.
func nearbyTitle(sel *goquery.Selection) string {
	card := sel.Closest("li, article, div, td")
	if card.Length() == 0 {
		return ""
	}
	title := card.Find("[class*=title], [class*=subtitle], [class*=role], [class*=position]").First()
	if title.Length() == 0 {
		return ""
	}
	return cleanText(title.Text())
}

// maxPublications bounds every adapter's publication extraction.
const maxPublications = 5

// collectPublications gathers up to maxPublications non-blank titles from the
// given selection, in page order. Entries outside a sane title length are
// dropped rather than truncated away entirely.
func collectPublications(items *goquery.Selection) []string {
	var pubs []string
	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		title := cleanText(strings.SplitN(item.Text(), "\n", 2)[0])
		if len(title) > 10 && len(title) < 500 {
			if len(title) > 300 {
				title = title[:300]
			}
			pubs = append(pubs, title)
		}
		return len(pubs) < maxPublications
	})
	return pubs
}

// publicationSection finds the container of a "Publications"-style section:
// first by class, then by heading text.
func publicationSection(doc *goquery.Document) *goquery.Selection {
	section := doc.Find("section[class*=publication], div[class*=publication]").First()
	if section.Length() > 0 {
		return section
	}
	var found *goquery.Selection
	doc.Find("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(h.Text()), "publication") {
			found = h.Closest("section, div")
			return false
		}
		return true
	})
	if found != nil && found.Length() > 0 {
		return found
	}
	return doc.Find("#__none__")
}

var assistantRe = regexp.MustCompile(`(?i)administrative\s*contact|assistant|coordinator`)

// assistantEmail extracts the administrative contact address: the mailto
// inside the innermost block that mentions an assistant or coordinator.
func assistantEmail(doc *goquery.Document) string {
	best := ""
	bestLen := -1
	doc.Find("div, li, section").Each(func(_ int, block *goquery.Selection) {
		text := block.Text()
		if !assistantRe.MatchString(text) {
			return
		}
		href, ok := block.Find(`a[href^="mailto:"]`).First().Attr("href")
		if !ok {
			return
		}
		if bestLen != -1 && len(text) >= bestLen {
			return
		}
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		addr = strings.TrimSpace(addr)
		if strings.Contains(addr, "@") {
			best = addr
			bestLen = len(text)
		}
	})
	return best
}

const maxInterests = 5

var interestHeaderRe = regexp.MustCompile(
	`(?i)research\s*(&|and)?\s*(scholarship|interests?|areas?|focus)|areas of expertise|expertise|specializations?`)

// interestSkip drops navigation and contact fragments that surface inside
// research sections.
var interestSkip = []string{
	"click", "view", "profile", "contact", "email", "phone",
	"read more", "learn more", "is part of", "official site",
	"postdoc", "student",
}

// researchInterests collects up to maxInterests topical phrases from a
// research/expertise section, falling back to field-keyword matches in the
// bio text when no such section exists.
func researchInterests(doc *goquery.Document) []string {
	var raw []string
	doc.Find("h2, h3, h4, strong, b").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		header := cleanText(h.Text())
		if !interestHeaderRe.MatchString(header) {
			return true
		}
		h.Closest("section, div, li").Find("li, p, span").Each(func(_ int, item *goquery.Selection) {
			text := cleanText(item.Text())
			if text != header && len(text) > 10 && len(text) < 200 {
				raw = append(raw, text)
			}
		})
		return len(raw) == 0
	})

	if len(raw) == 0 {
		if bio := doc.Find("div[class*=bio], section[class*=bio], div[class*=research], div[class*=about]").First(); bio.Length() > 0 {
			raw = keywordInterests(bio.Text())
		}
	}

	var cleaned []string
	seen := make(map[string]bool)
	for _, interest := range raw {
		lower := strings.ToLower(interest)
		if seen[lower] || len(interest) <= 3 || len(interest) >= 100 {
			continue
		}
		skipped := false
		for _, skip := range interestSkip {
			if strings.Contains(lower, skip) {
				skipped = true
				break
			}
		}
		if skipped {
			continue
		}
		seen[lower] = true
		cleaned = append(cleaned, interest)
		if len(cleaned) == maxInterests {
			break
		}
	}
	return cleaned
}

// fieldKeywords are research-area terms scanned for in bio text when a
// profile has no explicit interests section.
var fieldKeywords = []string{
	"nanomaterials", "biomaterials", "polymers", "ceramics", "semiconductors",
	"thin films", "nanostructures", "composites", "alloys",
	"catalysis", "electrochemistry", "photochemistry", "biochemistry",
	"thermodynamics", "kinetics", "spectroscopy",
	"solar cells", "batteries", "fuel cells", "photovoltaics",
	"energy storage", "renewable energy", "carbon capture",
	"drug delivery", "tissue engineering", "bioengineering",
	"synthetic biology", "climate change", "sustainability",
	"water treatment", "optics", "photonics", "fluid dynamics",
	"heat transfer", "machine learning", "simulation", "modeling",
	"characterization", "microscopy", "imaging",
}

var interestTitle = cases.Title(language.English)

// keywordInterests extracts known research-field terms from a text block.
func keywordInterests(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range fieldKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, interestTitle.String(kw))
			if len(out) == maxInterests {
				break
			}
		}
	}
	return out
}

// labLink finds an outbound lab/group/research website link, skipping social
// media.
func labLink(doc *goquery.Document, baseURL string) string {
	keywords := []string{"lab", "research group", "group website", "website", "homepage", "personal"}
	social := []string{"linkedin", "twitter", "facebook", "youtube", "instagram"}

	result := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(cleanText(a.Text()))
		href, _ := a.Attr("href")
		lowerHref := strings.ToLower(href)
		for _, s := range social {
			if strings.Contains(lowerHref, s) {
				return true
			}
		}
		if strings.HasPrefix(lowerHref, "mailto:") || strings.HasPrefix(lowerHref, "tel:") {
			return true
		}
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				result = absURL(baseURL, href)
				return false
			}
		}
		return true
	})
	return result
}

// scholarLink finds a Google Scholar profile link.
func scholarLink(doc *goquery.Document) string {
	href, _ := doc.Find(`a[href*="scholar.google"]`).First().Attr("href")
	return href
}

// mailtoAddress extracts the first mailto: address on the page, stripped of
// query parameters.
func mailtoAddress(doc *goquery.Document) string {
	href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href")
	if !ok {
		return ""
	}
	addr := strings.TrimPrefix(href, "mailto:")
	if i := strings.IndexByte(addr, '?'); i >= 0 {
		addr = addr[:i]
	}
	addr = strings.TrimSpace(addr)
	if !strings.Contains(addr, "@") {
		return ""
	}
	return addr
}

var phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// phoneNumber extracts a phone number, preferring tel: links over the first
// phone-shaped token in the page text.
func phoneNumber(doc *goquery.Document) string {
	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		if phone := strings.TrimSpace(strings.TrimPrefix(href, "tel:")); phone != "" {
			return phone
		}
	}
	return phoneRe.FindString(doc.Text())
}
