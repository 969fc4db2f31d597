package export

import (
	"fmt"

	"unitflow/internal/model"

	"github.com/xuri/excelize/v2"
)

// XLSX renders the records as a single-sheet spreadsheet with the same
// columns as the CSV export.
func XLSX(logs []model.LogRecord) ([]byte, error) {
	logs = sortAscending(logs)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, l := range logs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			Timestamp(l.Ts),
			l.Author,
			l.Shift,
			l.Unit,
			l.Type,
			l.Severity,
			l.Qty,
			flattenNotes(l.Notes),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
