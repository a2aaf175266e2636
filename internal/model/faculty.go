package model

import "strings"

// Candidate is a minimally-identified faculty entry found on a listing page,
// before rank filtering and profile enrichment.
type Candidate struct {
	Name             string `json:"name"`
	Title            string `json:"title"`
	DepartmentSource string `json:"department_source"`
	ProfileURL       string `json:"profile_url"`
}

// FacultyRecord is a fully enriched, per-source faculty entry after the
// profile page has been visited. Optional fields are empty strings / empty
// slices when the profile did not expose them.
type FacultyRecord struct {
	Candidate

	Email             string   `json:"email,omitempty"`
	AssistantEmail    string   `json:"assistant_email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	LabWebsite        string   `json:"lab_website,omitempty"`
	GoogleScholar     string   `json:"google_scholar,omitempty"`
	ResearchInterests []string `json:"research_interests,omitempty"`
	TopPublications   []string `json:"top_publications,omitempty"`
}

// Completeness counts the populated optional fields (0-5). It arbitrates
// merge order and is never serialized.
func (r FacultyRecord) Completeness() int {
	n := 0
	for _, s := range []string{r.Email, r.Phone, r.LabWebsite, r.GoogleScholar} {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	if len(r.TopPublications) > 0 {
		n++
	}
	return n
}

// MergedRecord is the deduplicated, cross-source-consolidated output unit.
// DepartmentSources preserves every contributing listing URL in first-seen
// order.
type MergedRecord struct {
	Name              string   `json:"name"`
	Title             string   `json:"title"`
	DepartmentSources []string `json:"department_sources"`
	ProfileURL        string   `json:"profile_url"`
	Email             string   `json:"email,omitempty"`
	AssistantEmail    string   `json:"assistant_email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	LabWebsite        string   `json:"lab_website,omitempty"`
	GoogleScholar     string   `json:"google_scholar,omitempty"`
	ResearchInterests []string `json:"research_interests,omitempty"`
	TopPublications   []string `json:"top_publications,omitempty"`
}

// ProfileFields holds the raw output of a profile-page parse before email
// resolution. ContactText carries the sidebar/contact fragments the email
// resolver scans; EmailRaw is a directly scraped address (mailto links) that
// short-circuits resolution when present.
type ProfileFields struct {
	EmailRaw          string
	AssistantEmail    string
	ContactText       []string
	Phone             string
	LabWebsite        string
	GoogleScholar     string
	ResearchInterests []string
	TopPublications   []string
}
