package service

import (
	"time"

	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/metrics"
	"go.uber.org/zap"
)

// ExportFile is a rendered download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders datasets through the export formatters
type ExportService struct {
	metrics *metrics.Metrics
	log     *zap.Logger
	now     func() time.Time
	lookup  func(format string) (export.Formatter, error)
	bundle  func(sets []export.Dataset, opts export.Options) ([]byte, error)
}

// NewExportService creates a new export service
func NewExportService(m *metrics.Metrics, log *zap.Logger) *ExportService {
	return &ExportService{
		metrics: m,
		log:     log,
		now:     time.Now,
		lookup:  export.Lookup,
		bundle:  export.Archive{}.Bundle,
	}
}

// Export renders ds in format (pdf, xlsx, csv). Rendering failures are
// reported as ErrExportFailed and no output is returned.
func (s *ExportService) Export(ds export.Dataset, format string) (*ExportFile, error) {
	formatter, err := s.lookup(format)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	now := s.now()
	data, err := formatter.Format(ds, export.Options{Title: ds.Name, GeneratedAt: now})
	s.metrics.ObserveExport(formatter.Extension(), err)
	if err != nil {
		s.log.Error("export failed", zap.String("dataset", ds.Name), zap.String("format", formatter.Extension()), zap.Error(err))
		return nil, apperror.ErrExportFailed
	}

	return &ExportFile{
		Name:        export.FileName(ds.Name, now, formatter.Extension()),
		ContentType: formatter.ContentType(),
		Data:        data,
	}, nil
}

// Archive bundles every dataset as CSV and PDF members of one zip
func (s *ExportService) Archive(sets []export.Dataset) (*ExportFile, error) {
	now := s.now()
	archive := export.Archive{}
	data, err := s.bundle(sets, export.Options{GeneratedAt: now})
	s.metrics.ObserveExport(archive.Extension(), err)
	if err != nil {
		s.log.Error("archive export failed", zap.Int("datasets", len(sets)), zap.Error(err))
		return nil, apperror.ErrExportFailed
	}

	return &ExportFile{
		Name:        export.ArchiveName(now),
		ContentType: archive.ContentType(),
		Data:        data,
	}, nil
}
