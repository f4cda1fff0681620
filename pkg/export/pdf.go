package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders a titled, timestamped table.
type PDF struct{}

func (PDF) ContentType() string { return "application/pdf" }
func (PDF) Extension() string   { return FormatPDF }

func (PDF) Format(ds Dataset, opts Options) ([]byte, error) {
	orientation := "P"
	if len(ds.Columns) > 5 {
		orientation = "L"
	}
	doc := fpdf.New(orientation, "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	title := opts.title(ds)
	at := opts.generatedAt()

	doc.SetTitle(title, true)
	doc.SetCreationDate(at)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 6, "Generated: "+at.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	doc.Ln(4)

	if len(ds.Columns) == 0 {
		doc.CellFormat(0, 6, "No columns", "", 1, "L", false, 0, "")
		return output(doc)
	}

	pageW, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	colW := (pageW - left - right) / float64(len(ds.Columns))

	header := func() {
		doc.SetFont("Helvetica", "B", 9)
		doc.SetFillColor(230, 230, 230)
		for _, c := range ds.Columns {
			doc.CellFormat(colW, 7, fit(doc, tr(c), colW), "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
		doc.SetFont("Helvetica", "", 9)
	}
	doc.SetHeaderFuncMode(func() {
		if doc.PageNo() > 1 {
			header()
		}
	}, true)
	header()

	for _, r := range ds.Rows {
		for _, v := range ds.Values(r) {
			doc.CellFormat(colW, 6, fit(doc, tr(v), colW), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
	if len(ds.Rows) == 0 {
		doc.CellFormat(0, 6, "No records", "1", 1, "C", false, 0, "")
	}
	doc.Ln(2)
	doc.CellFormat(0, 6, fmt.Sprintf("Total records: %d", len(ds.Rows)), "", 1, "R", false, 0, "")

	return output(doc)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit shortens s until it fits in width w minus cell padding.
func fit(doc *fpdf.Fpdf, s string, w float64) string {
	limit := w - 2
	if doc.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && doc.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
