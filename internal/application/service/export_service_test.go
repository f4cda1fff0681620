package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExportService() *ExportService {
	svc := NewExportService(metrics.New("test"), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC) }
	return svc
}

var salesDataset = export.Dataset{
	Name:    "Sales Summary",
	Columns: []string{"ID", "Amount"},
	Rows:    []export.Row{{"ID": "INV-1", "Amount": "$10.00"}},
}

func TestExportCSV(t *testing.T) {
	file, err := newExportService().Export(salesDataset, "csv")
	require.NoError(t, err)

	assert.Equal(t, "Sales_Summary_2026-05-04.csv", file.Name)
	assert.Contains(t, file.ContentType, "text/csv")
	assert.Contains(t, string(file.Data), "INV-1")
}

func TestExportDefaultsToPDF(t *testing.T) {
	file, err := newExportService().Export(salesDataset, "")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := newExportService().Export(salesDataset, "docx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestArchiveBundlesEveryDataset(t *testing.T) {
	other := salesDataset
	other.Name = "Payroll"

	file, err := newExportService().Archive([]export.Dataset{salesDataset, other})
	require.NoError(t, err)
	assert.Equal(t, "all_reports_2026-05-04.zip", file.Name)

	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"Sales_Summary.csv", "Sales_Summary.pdf", "Payroll.csv", "Payroll.pdf"}, names)
}

type brokenFormatter struct{ export.CSV }

func (brokenFormatter) Format(export.Dataset, export.Options) ([]byte, error) {
	return nil, errors.New("disk full")
}

func TestExportFailureReturnsNoFile(t *testing.T) {
	svc := newExportService()
	svc.lookup = func(string) (export.Formatter, error) { return brokenFormatter{}, nil }

	file, err := svc.Export(salesDataset, "csv")
	assert.Nil(t, file)
	assert.ErrorIs(t, err, apperror.ErrExportFailed)
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
}

func TestArchiveFailureReturnsNoFile(t *testing.T) {
	svc := newExportService()
	svc.bundle = func([]export.Dataset, export.Options) ([]byte, error) {
		return nil, errors.New("zip writer closed")
	}

	file, err := svc.Archive([]export.Dataset{salesDataset})
	assert.Nil(t, file)
	assert.ErrorIs(t, err, apperror.ErrExportFailed)
}
