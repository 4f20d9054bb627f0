package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/fetch"
	"covid-dashboard/internal/filter"
	"covid-dashboard/internal/projection"
	"covid-dashboard/internal/repository"
	"covid-dashboard/internal/sorting"
	"covid-dashboard/internal/store"
	"covid-dashboard/internal/view"

	"github.com/rs/zerolog"
)

var (
	ErrNotLoaded        = errors.New("dashboard data not loaded")
	ErrUnknownSortField = errors.New("unknown sort field")
)

// Loader fills the store; *fetch.Orchestrator in production.
type Loader interface {
	Run(ctx context.Context) (fetch.Report, error)
}

// Dashboard is the single owner of the filter state. Every command runs
// under one mutex: mutate, rebuild the projection, dispatch all views. Two
// recomputations never interleave and a frame always comes from one
// projection.
type Dashboard struct {
	mu         sync.Mutex
	state      filter.State
	frame      *view.Frame
	store      *store.Store
	loader     Loader
	dispatcher *view.Dispatcher
	directions *sorting.Directions
	loads      *repository.LoadRepository
	logger     zerolog.Logger
}

func NewDashboard(st *store.Store, loader Loader, dispatcher *view.Dispatcher, loads *repository.LoadRepository, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		state:      filter.Default(),
		store:      st,
		loader:     loader,
		dispatcher: dispatcher,
		directions: sorting.NewDirections(),
		loads:      loads,
		logger:     logger,
	}
}

// Load fetches a new snapshot and, on success, re-renders the current
// filter state against it. On failure the previous snapshot stays.
func (d *Dashboard) Load(ctx context.Context, origin domain.LoadOrigin) (fetch.Report, error) {
	start := time.Now()
	report, err := d.loader.Run(ctx)

	rec := domain.LoadRecord{
		Origin:     origin,
		Status:     domain.LoadStatusOK,
		Version:    report.Version,
		Regions:    report.Regions,
		Points:     report.Points,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		rec.Status = domain.LoadStatusFailed
		rec.Error = err.Error()
		var failure *fetch.FailureError
		if errors.As(err, &failure) {
			rec.FailedRequests = failure.Requests
		}
	}
	if _, jerr := d.loads.Record(ctx, rec); jerr != nil {
		d.logger.Warn().Err(jerr).Msg("failed to journal load")
	}

	if err != nil {
		d.logger.Error().Err(err).Str("origin", string(origin)).Bool("has_previous", d.store.Loaded()).Msg("load failed")
		return report, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.recompute()
	return report, nil
}

func (d *Dashboard) Loaded() bool {
	return d.store.Loaded()
}

func (d *Dashboard) GlobalStats() (domain.GlobalStats, error) {
	if !d.store.Loaded() {
		return domain.GlobalStats{}, ErrNotLoaded
	}
	return d.store.Global(), nil
}

func (d *Dashboard) SetMetric(m domain.Metric) (*view.Frame, error) {
	if !m.Known() {
		d.logger.Warn().Str("metric", string(m)).Msg("unknown metric, views will be empty")
	}
	return d.apply(func(s *filter.State) { s.SetMetric(m) })
}

func (d *Dashboard) SetContinent(c string) (*view.Frame, error) {
	return d.apply(func(s *filter.State) { s.SetContinent(c) })
}

func (d *Dashboard) SetSearch(term string) (*view.Frame, error) {
	return d.apply(func(s *filter.State) { s.SetSearch(term) })
}

func (d *Dashboard) Reset() (*view.Frame, error) {
	return d.apply(func(s *filter.State) { s.Reset() })
}

type SortResult struct {
	Field     sorting.Field
	Ascending bool
	Frame     *view.Frame
}

// SortTable toggles the column's remembered direction and reorders the whole
// snapshot, so the table and the export both follow it.
func (d *Dashboard) SortTable(field sorting.Field) (SortResult, error) {
	if !field.Known() {
		return SortResult{}, fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.store.Loaded() {
		return SortResult{}, ErrNotLoaded
	}

	ascending := d.directions.Toggle(field)
	version := d.store.Reorder(func(regions []domain.Region) {
		sorting.SortBy(regions, field, ascending)
	})
	d.logger.Info().Str("field", string(field)).Bool("ascending", ascending).Uint64("version", version).Msg("table sorted")
	return SortResult{Field: field, Ascending: ascending, Frame: d.recompute()}, nil
}

func (d *Dashboard) Filter() filter.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Snapshot()
}

// Frame returns the last dispatched frame.
func (d *Dashboard) Frame() (*view.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return nil, ErrNotLoaded
	}
	return d.frame, nil
}

func (d *Dashboard) Table() (view.Table, error) {
	frame, err := d.Frame()
	if err != nil {
		return view.Table{}, err
	}
	return frame.Table, nil
}

// Continents lists the continent vocabulary of the loaded snapshot.
func (d *Dashboard) Continents() ([]string, error) {
	snap, ok := d.store.Snapshot()
	if !ok {
		return nil, ErrNotLoaded
	}
	return domain.Continents(snap.Regions), nil
}

// RenderChart renders a single view for the current state in the requested
// format without touching the last frame.
func (d *Dashboard) RenderChart(kind view.Kind, format view.Format) (*view.View, error) {
	d.mu.Lock()
	state := d.state.Snapshot()
	d.mu.Unlock()

	snap, ok := d.store.Snapshot()
	if !ok {
		return nil, ErrNotLoaded
	}
	return d.dispatcher.Render(kind, projection.Build(snap, state), format), nil
}

func (d *Dashboard) apply(mutate func(*filter.State)) (*view.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.store.Loaded() {
		return nil, ErrNotLoaded
	}
	mutate(&d.state)
	return d.recompute(), nil
}

// recompute must be called with mu held.
func (d *Dashboard) recompute() *view.Frame {
	snap, ok := d.store.Snapshot()
	if !ok {
		return nil
	}
	state := d.state.Snapshot()
	p := projection.Build(snap, state)
	if p.UnknownContinent {
		d.logger.Warn().
			Str("continent", state.Continent).
			Str("known", strings.Join(p.Continents, ", ")).
			Msg("continent filter matches nothing in the snapshot")
	}
	d.frame = d.dispatcher.Dispatch(p, view.FormatSVG)
	return d.frame
}
