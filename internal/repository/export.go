package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"covid-dashboard/internal/constants"
	"covid-dashboard/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ExportRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewExportRepository(sqlDB *sql.DB, logger zerolog.Logger) *ExportRepository {
	return &ExportRepository{db: sqlDB, logger: logger}
}

func (r *ExportRepository) Record(ctx context.Context, rec domain.ExportRecord) (domain.ExportRecord, error) {
	if r.db == nil {
		return rec, nil
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if rec.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return rec, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		rec.ID = id
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO export_log (id, format, file_name, row_count, unsafe_rows, snapshot_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Format, rec.FileName, rec.Rows, rec.UnsafeRows, int64(rec.Version), rec.CreatedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to insert export record: %w", err)
	}
	return rec, nil
}

func (r *ExportRepository) Recent(ctx context.Context, limit int) ([]domain.ExportRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, format, file_name, row_count, unsafe_rows, snapshot_version, created_at
		FROM export_log
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export log: %w", err)
	}
	defer rows.Close()

	var out []domain.ExportRecord
	for rows.Next() {
		var (
			rec     domain.ExportRecord
			version int64
		)
		if err := rows.Scan(&rec.ID, &rec.Format, &rec.FileName, &rec.Rows, &rec.UnsafeRows, &version, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		rec.Version = uint64(version)
		out = append(out, rec)
	}
	return out, rows.Err()
}
