package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteness(t *testing.T) {
	empty := FacultyRecord{Candidate: Candidate{Name: "Jane Doe", Title: "Professor"}}
	assert.Equal(t, 0, empty.Completeness())

	partial := empty
	partial.Email = "jdoe@stanford.edu"
	partial.Phone = "  "
	assert.Equal(t, 1, partial.Completeness())

	full := FacultyRecord{
		Candidate:       Candidate{Name: "Jane Doe"},
		Email:           "jdoe@stanford.edu",
		Phone:           "650-555-0100",
		LabWebsite:      "https://doelab.stanford.edu",
		GoogleScholar:   "https://scholar.google.com/citations?user=abc",
		TopPublications: []string{"Paper One"},
	}
	assert.Equal(t, 5, full.Completeness())
}
