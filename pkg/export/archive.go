package export

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Archive bundles a CSV and a PDF member per dataset into one ZIP.
type Archive struct{}

func (Archive) ContentType() string { return "application/zip" }
func (Archive) Extension() string   { return FormatZIP }

// Format bundles a single dataset.
func (a Archive) Format(ds Dataset, opts Options) ([]byte, error) {
	return a.Bundle([]Dataset{ds}, opts)
}

// Bundle writes <Name>.csv and <Name>.pdf for every dataset. Nothing is
// returned unless every member rendered.
func (Archive) Bundle(sets []Dataset, opts Options) ([]byte, error) {
	members := []Formatter{CSV{}, PDF{}}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, ds := range sets {
		memberOpts := opts
		memberOpts.Title = ds.Name
		for _, m := range members {
			data, err := m.Format(ds, memberOpts)
			if err != nil {
				zw.Close()
				return nil, fmt.Errorf("export: %s member for %q: %w", m.Extension(), ds.Name, err)
			}
			hdr := &zip.FileHeader{
				Name:     BaseName(ds.Name) + "." + m.Extension(),
				Method:   zip.Deflate,
				Modified: opts.generatedAt(),
			}
			w, err := zw.CreateHeader(hdr)
			if err != nil {
				zw.Close()
				return nil, fmt.Errorf("export: create member: %w", err)
			}
			if _, err := w.Write(data); err != nil {
				zw.Close()
				return nil, fmt.Errorf("export: write member: %w", err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	return buf.Bytes(), nil
}
