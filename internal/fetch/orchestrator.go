// Package fetch loads the three upstream documents concurrently and
// publishes them to the store as one snapshot, or not at all.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrFetchFailure = errors.New("fetch failure")

const (
	RequestGlobal     = "global"
	RequestCountries  = "countries"
	RequestHistorical = "historical"
)

// Source is the upstream the orchestrator reads from.
type Source interface {
	GetGlobal(ctx context.Context) (*domain.GlobalStats, error)
	GetCountries(ctx context.Context) ([]domain.Region, error)
	GetHistorical(ctx context.Context) (*domain.HistoricalResponse, error)
}

// FailureError lists every request that failed during one run.
type FailureError struct {
	Requests []string
	Err      error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrFetchFailure, strings.Join(e.Requests, ", "), e.Err)
}

func (e *FailureError) Unwrap() []error {
	return []error{ErrFetchFailure, e.Err}
}

// Report describes a successful run.
type Report struct {
	Version  uint64
	Regions  int
	Points   int
	Duration time.Duration
}

type Orchestrator struct {
	source  Source
	store   *store.Store
	timeout time.Duration
	logger  zerolog.Logger
}

func NewOrchestrator(source Source, st *store.Store, cfg *config.Config, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{source: source, store: st, timeout: cfg.FetchTimeout, logger: logger}
}

// Run issues the global, countries and historical requests together and
// waits for all of them. The store is loaded exactly once on success and
// left untouched on any failure.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	var (
		global     *domain.GlobalStats
		regions    []domain.Region
		historical *domain.HistoricalResponse
		series     *domain.HistoricalSeries

		mu     sync.Mutex
		failed []string
	)

	g, gCtx := errgroup.WithContext(ctx)
	track := func(name string, fn func() error) {
		g.Go(func() error {
			err := fn()
			if err == nil {
				return nil
			}
			// siblings cancelled after the first failure are not failures of their own
			if errors.Is(err, context.Canceled) && ctx.Err() == nil {
				return err
			}
			mu.Lock()
			failed = append(failed, name)
			mu.Unlock()
			o.logger.Warn().Err(err).Str("request", name).Msg("upstream request failed")
			return fmt.Errorf("%s: %w", name, err)
		})
	}

	track(RequestGlobal, func() error {
		var err error
		global, err = o.source.GetGlobal(gCtx)
		return err
	})
	track(RequestCountries, func() error {
		var err error
		regions, err = o.source.GetCountries(gCtx)
		return err
	})
	track(RequestHistorical, func() error {
		var err error
		historical, err = o.source.GetHistorical(gCtx)
		if err != nil {
			return err
		}
		series, err = historical.Series()
		return err
	})

	if err := g.Wait(); err != nil {
		mu.Lock()
		names := sortedRequests(failed)
		mu.Unlock()
		o.logger.Error().Err(err).Strs("failed", names).Msg("fetch failed, store unchanged")
		return Report{}, &FailureError{Requests: names, Err: err}
	}

	version := o.store.Load(*global, regions, series)
	report := Report{
		Version:  version,
		Regions:  len(regions),
		Points:   series.Len(),
		Duration: time.Since(start),
	}
	o.logger.Info().
		Uint64("version", report.Version).
		Int("regions", report.Regions).
		Int("points", report.Points).
		Dur("duration", report.Duration).
		Msg("snapshot loaded")
	return report, nil
}

// sortedRequests keeps the failure list in request order regardless of
// which goroutine finished first.
func sortedRequests(names []string) []string {
	out := make([]string, 0, len(names))
	for _, want := range []string{RequestGlobal, RequestCountries, RequestHistorical} {
		for _, n := range names {
			if n == want {
				out = append(out, n)
				break
			}
		}
	}
	return out
}
