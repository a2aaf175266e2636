package pipeline

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// diacriticsFold decomposes characters and drops combining marks, so
// "Muñoz" and "Munoz" share a merge key.
var diacriticsFold = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeKey produces the identity key a person is grouped under:
// case-folded, whitespace-collapsed, diacritics-stripped, punctuation
// dropped so "Jane A. Smith" and "jane a smith" collapse.
func normalizeKey(name string) string {
	folded, _, err := transform.String(diacriticsFold, name)
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Merge consolidates records that refer to the same person across source
// listings. Within a group, optional fields are merged per-field: the first
// non-empty value wins, visiting records in completeness-descending order
// with first-seen order breaking ties (stable). TopPublications takes the
// longest non-empty list; DepartmentSources unions every contributing
// listing URL in first-seen order.
func Merge(records []model.FacultyRecord) []model.MergedRecord {
	type group struct {
		key     string
		members []model.FacultyRecord
	}

	var order []string
	groups := make(map[string]*group)
	for _, r := range records {
		key := normalizeKey(r.Name)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, r)
	}

	merged := make([]model.MergedRecord, 0, len(order))
	for _, key := range order {
		merged = append(merged, mergeGroup(groups[key].members))
	}
	return merged
}

func mergeGroup(members []model.FacultyRecord) model.MergedRecord {
	// Completeness-descending visit order; stable sort preserves first-seen
	// order among equals.
	ranked := make([]model.FacultyRecord, len(members))
	copy(ranked, members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Completeness() > ranked[j].Completeness()
	})

	out := model.MergedRecord{
		Name:       ranked[0].Name,
		Title:      ranked[0].Title,
		ProfileURL: ranked[0].ProfileURL,
	}

	for _, r := range ranked {
		if out.Email == "" {
			out.Email = r.Email
		}
		if out.AssistantEmail == "" {
			out.AssistantEmail = r.AssistantEmail
		}
		if out.Phone == "" {
			out.Phone = r.Phone
		}
		if out.LabWebsite == "" {
			out.LabWebsite = r.LabWebsite
		}
		if out.GoogleScholar == "" {
			out.GoogleScholar = r.GoogleScholar
		}
		if len(out.ResearchInterests) == 0 {
			out.ResearchInterests = r.ResearchInterests
		}
		if len(r.TopPublications) > len(out.TopPublications) {
			out.TopPublications = r.TopPublications
		}
	}

	// Sources union in first-seen (pre-sort) order.
	seen := make(map[string]bool)
	for _, r := range members {
		if r.DepartmentSource == "" || seen[r.DepartmentSource] {
			continue
		}
		seen[r.DepartmentSource] = true
		out.DepartmentSources = append(out.DepartmentSources, r.DepartmentSource)
	}

	return out
}
