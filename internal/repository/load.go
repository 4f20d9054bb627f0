package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"covid-dashboard/internal/constants"
	"covid-dashboard/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// LoadRepository journals fetch attempts. A nil db turns every call into a
// no-op so the dashboard runs without a journal.
type LoadRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLoadRepository(sqlDB *sql.DB, logger zerolog.Logger) *LoadRepository {
	return &LoadRepository{db: sqlDB, logger: logger}
}

func (r *LoadRepository) Enabled() bool { return r.db != nil }

func (r *LoadRepository) Record(ctx context.Context, rec domain.LoadRecord) (domain.LoadRecord, error) {
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
		INSERT INTO load_journal (id, origin, status, version, regions, points, failed_requests, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Origin), string(rec.Status), int64(rec.Version), rec.Regions, rec.Points,
		strings.Join(rec.FailedRequests, ","), rec.Error, rec.DurationMs, rec.CreatedAt,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to insert load record: %w", err)
	}
	r.logger.Debug().Str("id", rec.ID).Str("status", string(rec.Status)).Msg("load journaled")
	return rec, nil
}

// Recent returns the newest records first.
func (r *LoadRepository) Recent(ctx context.Context, limit int) ([]domain.LoadRecord, error) {
	if r.db == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, origin, status, version, regions, points, failed_requests, error, duration_ms, created_at
		FROM load_journal
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query load journal: %w", err)
	}
	defer rows.Close()

	var out []domain.LoadRecord
	for rows.Next() {
		var (
			rec     domain.LoadRecord
			origin  string
			status  string
			version int64
			failed  string
		)
		if err := rows.Scan(&rec.ID, &origin, &status, &version, &rec.Regions, &rec.Points, &failed, &rec.Error, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load record: %w", err)
		}
		rec.Origin = domain.LoadOrigin(origin)
		rec.Status = domain.LoadStatus(status)
		rec.Version = uint64(version)
		if failed != "" {
			rec.FailedRequests = strings.Split(failed, ",")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
