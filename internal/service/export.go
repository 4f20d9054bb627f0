package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/export"
	"covid-dashboard/internal/repository"
	"covid-dashboard/internal/store"

	"github.com/rs/zerolog"
)

var ErrUnknownExportFormat = errors.New("unknown export format")

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
)

// Export is the full dataset in the store's current order, captured once so
// the file name and the body agree.
type Export struct {
	Format      string
	FileName    string
	ContentType string
	records     []domain.Region
	version     uint64
	unsafe      []string
}

type ExportService struct {
	store   *store.Store
	exports *repository.ExportRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewExportService(st *store.Store, exports *repository.ExportRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{store: st, exports: exports, logger: logger, now: time.Now}
}

func (s *ExportService) Prepare(format string) (*Export, error) {
	snap, ok := s.store.Snapshot()
	if !ok {
		return nil, ErrNotLoaded
	}

	e := &Export{Format: format, records: snap.Regions, version: snap.Version}
	switch format {
	case ExportCSV:
		e.ContentType = "text/csv; charset=utf-8"
		e.unsafe = export.Unsafe(snap.Regions, export.DefaultColumns, export.DefaultDelimiter)
	case ExportXLSX:
		e.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
	e.FileName = export.FileName(s.now(), format)
	return e, nil
}

func (s *ExportService) Write(ctx context.Context, w io.Writer, e *Export) error {
	if len(e.unsafe) > 0 {
		// fields are written unescaped; these rows will split in a CSV reader
		s.logger.Warn().Strs("values", e.unsafe).Msg("export contains values with the delimiter or a newline")
	}

	var err error
	switch e.Format {
	case ExportCSV:
		err = export.WriteDelimitedText(w, e.records, export.DefaultColumns, export.DefaultDelimiter)
	case ExportXLSX:
		err = export.WriteXLSX(w, e.records, export.DefaultColumns)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownExportFormat, e.Format)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("format", e.Format).Msg("export failed")
		return fmt.Errorf("failed to write %s export: %w", e.Format, err)
	}

	_, jerr := s.exports.Record(ctx, domain.ExportRecord{
		Format:     e.Format,
		FileName:   e.FileName,
		Rows:       len(e.records),
		UnsafeRows: len(e.unsafe),
		Version:    e.version,
	})
	if jerr != nil {
		s.logger.Warn().Err(jerr).Msg("failed to journal export")
	}
	s.logger.Info().Str("file", e.FileName).Int("rows", len(e.records)).Msg("export written")
	return nil
}
