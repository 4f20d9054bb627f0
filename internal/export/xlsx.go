package export

import (
	"fmt"
	"io"

	excelize "github.com/360EntSecGroup-Skylar/excelize/v2"

	"covid-dashboard/internal/domain"
)

const sheetName = "Data"

// WriteXLSX writes the same columns as the delimited export into a single
// sheet workbook. Numeric columns stay numeric in the workbook.
func WriteXLSX(w io.Writer, records []domain.Region, columns []Column) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if len(columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for i, r := range records {
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			row[j] = c.Raw(r)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.Country, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
