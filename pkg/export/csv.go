package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV renders the header and rows as comma separated text.
type CSV struct{}

func (CSV) ContentType() string { return "text/csv" }
func (CSV) Extension() string   { return FormatCSV }

func (CSV) Format(ds Dataset, _ Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, r := range ds.Rows {
		if err := w.Write(ds.Values(r)); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
