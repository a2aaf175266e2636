package pipeline

import "strings"

// excludeTerms disqualify a title regardless of inclusion matches.
var excludeTerms = []string{
	"lecturer",
	"adjunct",
	"instructor",
	"staff",
	"emeritus",
	"visiting",
}

// IncludeTitle reports whether an academic title passes the rank policy:
// it must contain "professor" (case-insensitive) and none of the exclusion
// terms. Exclusions take precedence.
func IncludeTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, term := range excludeTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return strings.Contains(lower, "professor")
}
