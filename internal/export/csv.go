// Package export writes merged faculty records to the supported output
// sinks: CSV, JSON, XLSX, and optionally a Notion database.
package export

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// csvColumns defines the ordered CSV output columns.
var csvColumns = []string{
	"Name",
	"Title",
	"Department Sources",
	"Profile URL",
	"Email",
	"Assistant Email",
	"Phone",
	"Lab Website",
	"Google Scholar",
	"Research Interests",
	"Top Publications",
}

// WriteCSV writes records as a flat CSV file. Multi-valued fields are
// delimiter-joined: sources and interests with ", ", publications with " | ".
func WriteCSV(records []model.MergedRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "csv export: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvColumns); err != nil {
		return eris.Wrap(err, "csv export: write header")
	}

	for _, r := range records {
		if err := w.Write(csvRow(r)); err != nil {
			return eris.Wrapf(err, "csv export: write row %s", r.Name)
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "csv export: flush")
}

func csvRow(r model.MergedRecord) []string {
	return []string{
		r.Name,
		r.Title,
		strings.Join(r.DepartmentSources, ", "),
		r.ProfileURL,
		r.Email,
		r.AssistantEmail,
		r.Phone,
		r.LabWebsite,
		r.GoogleScholar,
		strings.Join(r.ResearchInterests, ", "),
		strings.Join(r.TopPublications, " | "),
	}
}
