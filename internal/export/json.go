package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// WriteJSON writes records as an indented JSON array, preserving
// publications as an ordered list and department sources as a set.
func WriteJSON(records []model.MergedRecord, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "json export: create file")
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return eris.Wrap(err, "json export: encode")
	}
	return nil
}
