package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	DataSheet     = "Report Data"
	TemplateSheet = "Template"

	// Template rows whose first cell starts with this marker are
	// instructions and are skipped when a workbook is read back.
	noteMarker = "#"
)

var templateNotes = []string{
	"# Fill in one record per row below the header.",
	"# Keep the header row unchanged; column names are matched exactly.",
	"# Rows starting with # are ignored on import.",
}

// Spreadsheet renders an XLSX workbook. An empty dataset becomes a template.
type Spreadsheet struct{}

func (Spreadsheet) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (Spreadsheet) Extension() string { return FormatXLSX }

func (Spreadsheet) Format(ds Dataset, opts Options) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := DataSheet
	if len(ds.Rows) == 0 {
		sheet = TemplateSheet
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("export: name sheet: %w", err)
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return nil, fmt.Errorf("export: header style: %w", err)
	}

	if len(ds.Rows) == 0 {
		for i, note := range templateNotes {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetCellValue(sheet, cell, note); err != nil {
				return nil, fmt.Errorf("export: write template: %w", err)
			}
		}
	}

	for i, r := range ds.Rows {
		values := ds.Values(r)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadSpreadsheet reads the first sheet of an XLSX workbook back into a
// dataset. The first row is the header. Blank rows are skipped, and so are
// instruction rows on a template sheet.
func ReadSpreadsheet(data []byte) (Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Dataset{}, fmt.Errorf("export: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	for _, name := range f.GetSheetList() {
		if name == DataSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("export: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Dataset{Name: sheet}, nil
	}

	template := sheet == TemplateSheet
	ds := Dataset{Name: sheet, Columns: rows[0], Rows: []Row{}}
	for _, cells := range rows[1:] {
		if blank(cells) || (template && strings.HasPrefix(strings.TrimSpace(cells[0]), noteMarker)) {
			continue
		}
		r := make(Row, len(ds.Columns))
		for i, c := range ds.Columns {
			if i < len(cells) {
				r[c] = cells[i]
			} else {
				r[c] = ""
			}
		}
		ds.Rows = append(ds.Rows, r)
	}
	return ds, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
