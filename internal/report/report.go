// Package report exports a run's results for review outside the tool,
// as CSV or as a spreadsheet.
package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/ruidferreira/nota-renamer/internal/domain/process"
)

const sheetName = "Resultados"

// WriteCSV writes one row per processed PDF, in run order.
func WriteCSV(w io.Writer, results []process.ProcessingResult) error {
	if err := gocsv.Marshal(&results, w); err != nil {
		return fmt.Errorf("writing csv report: %w", err)
	}
	return nil
}

// WriteXLSX writes the results as a spreadsheet at path.
func WriteXLSX(path string, results []process.ProcessingResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("writing xlsx report: %w", err)
	}

	headers := []string{"Arquivo original", "Arquivo renomeado", "Correspondido", "Sugestão"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("writing xlsx report: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing xlsx report: %w", err)
		}
	}

	for i, r := range results {
		row := i + 2
		values := []interface{}{r.OriginalName, r.NewName, r.Matched, r.Suggestion}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("writing xlsx report: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing xlsx report: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing xlsx report: %w", err)
	}
	return nil
}
