package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/san-kum/tempsynth/internal/record"
)

const DefaultSheet = "Sheet1"

func buildWorkbook(rec *record.Record, sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if sheet == "" {
		sheet = DefaultSheet
	}
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	header := make([]interface{}, len(rec.Headers))
	for i, h := range rec.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range rec.Rows {
		cells := make([]interface{}, 0, len(row.Values)+1)
		cells = append(cells, row.Timestamp)
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX writes rec as a single-sheet workbook.
func WriteXLSX(w io.Writer, rec *record.Record, sheet string) error {
	f, err := buildWorkbook(rec, sheet)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func SaveXLSX(path string, rec *record.Record, sheet string) error {
	f, err := buildWorkbook(rec, sheet)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
