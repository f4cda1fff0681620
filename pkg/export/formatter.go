// Package export renders tabular datasets as downloadable documents.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Row maps a column name to its display value.
type Row map[string]string

// Dataset is a titled table ready for rendering.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Values returns the row's cells in column order.
func (ds Dataset) Values(r Row) []string {
	out := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		out[i] = r[c]
	}
	return out
}

// Options tune a single rendering.
type Options struct {
	Title       string
	GeneratedAt time.Time
}

func (o Options) title(ds Dataset) string {
	if o.Title != "" {
		return o.Title
	}
	return ds.Name
}

func (o Options) generatedAt() time.Time {
	if o.GeneratedAt.IsZero() {
		return time.Now()
	}
	return o.GeneratedAt
}

// Formatter converts a dataset to a document.
type Formatter interface {
	Format(ds Dataset, opts Options) ([]byte, error)
	ContentType() string
	Extension() string
}

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatZIP  = "zip"
)

// ErrUnknownFormat is returned by Lookup for unsupported formats.
type ErrUnknownFormat string

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("export: unknown format %q", string(e))
}

// Lookup returns the formatter registered for format.
func Lookup(format string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPDF, "":
		return PDF{}, nil
	case FormatXLSX, "excel":
		return Spreadsheet{}, nil
	case FormatCSV:
		return CSV{}, nil
	case FormatZIP:
		return Archive{}, nil
	default:
		return nil, ErrUnknownFormat(format)
	}
}

// BaseName replaces spaces with underscores.
func BaseName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// FileName builds "<name>_<YYYY-MM-DD>.<ext>".
func FileName(name string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", BaseName(name), at.Format("2006-01-02"), ext)
}

// ArchiveName builds "all_reports_<YYYY-MM-DD>.zip".
func ArchiveName(at time.Time) string {
	return "all_reports_" + at.Format("2006-01-02") + ".zip"
}
