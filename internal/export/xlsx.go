package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/outreach-group/faculty-cli/internal/model"
)

// WriteXLSX writes records as a single-sheet workbook using the same column
// layout as the CSV export.
func WriteXLSX(records []model.MergedRecord, outputPath string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Faculty")
	if err != nil {
		return eris.Wrap(err, "xlsx export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range csvColumns {
		header.AddCell().SetString(col)
	}

	for _, r := range records {
		row := sheet.AddRow()
		for _, val := range csvRow(r) {
			row.AddCell().SetString(val)
		}
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "xlsx export: save")
	}
	return nil
}
