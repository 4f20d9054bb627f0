package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/store"

	"github.com/rs/zerolog"
)

type fakeSource struct {
	globalErr     error
	countriesErr  error
	historicalErr error
	historical    *domain.HistoricalResponse
	delay         time.Duration
}

func (f *fakeSource) GetGlobal(ctx context.Context) (*domain.GlobalStats, error) {
	if f.globalErr != nil {
		return nil, f.globalErr
	}
	return &domain.GlobalStats{Cases: 100, Deaths: 3}, nil
}

func (f *fakeSource) GetCountries(ctx context.Context) ([]domain.Region, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.countriesErr != nil {
		return nil, f.countriesErr
	}
	return []domain.Region{
		{Country: "A", Continent: "Europe", Cases: 60},
		{Country: "B", Continent: "Asia", Cases: 40},
	}, nil
}

func (f *fakeSource) GetHistorical(ctx context.Context) (*domain.HistoricalResponse, error) {
	if f.historicalErr != nil {
		return nil, f.historicalErr
	}
	if f.historical != nil {
		return f.historical, nil
	}
	return &domain.HistoricalResponse{
		Cases: domain.DatedValues{
			Keys:   []string{"1/1/22", "1/2/22"},
			Values: map[string]float64{"1/1/22": 90, "1/2/22": 100},
		},
	}, nil
}

func newOrchestrator(src Source, st *store.Store, timeout time.Duration) *Orchestrator {
	return NewOrchestrator(src, st, &config.Config{FetchTimeout: timeout}, zerolog.Nop())
}

func TestRun_Success(t *testing.T) {
	st := store.New()
	report, err := newOrchestrator(&fakeSource{}, st, time.Second).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Version != 1 || report.Regions != 2 || report.Points != 2 {
		t.Errorf("unexpected report %+v", report)
	}
	snap, ok := st.Snapshot()
	if !ok {
		t.Fatal("store must be loaded after a successful run")
	}
	if snap.Global.Cases != 100 || len(snap.Regions) != 2 || snap.Historical.Len() != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestRun_HistoricalFailureLeavesStoreEmpty(t *testing.T) {
	st := store.New()
	_, err := newOrchestrator(&fakeSource{historicalErr: errors.New("503")}, st, time.Second).Run(context.Background())
	if !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("expected ErrFetchFailure, got %v", err)
	}
	var failure *FailureError
	if !errors.As(err, &failure) {
		t.Fatalf("expected FailureError, got %T", err)
	}
	if len(failure.Requests) != 1 || failure.Requests[0] != RequestHistorical {
		t.Errorf("expected historical to be named, got %v", failure.Requests)
	}
	if st.Loaded() {
		t.Fatal("store must stay unloaded after a failed run")
	}
}

func TestRun_BadHistoricalDate(t *testing.T) {
	st := store.New()
	src := &fakeSource{historical: &domain.HistoricalResponse{
		Cases: domain.DatedValues{Keys: []string{"yesterday"}, Values: map[string]float64{"yesterday": 1}},
	}}
	if _, err := newOrchestrator(src, st, time.Second).Run(context.Background()); !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("expected ErrFetchFailure, got %v", err)
	}
	if st.Loaded() {
		t.Fatal("store must stay unloaded")
	}
}

func TestRun_FailureKeepsPreviousSnapshot(t *testing.T) {
	st := store.New()
	if _, err := newOrchestrator(&fakeSource{}, st, time.Second).Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, err := newOrchestrator(&fakeSource{globalErr: errors.New("boom")}, st, time.Second).Run(context.Background())
	if !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("expected ErrFetchFailure, got %v", err)
	}
	snap, _ := st.Snapshot()
	if snap.Version != 1 || snap.Global.Cases != 100 {
		t.Errorf("previous snapshot must survive, got %+v", snap)
	}
}

func TestRun_Timeout(t *testing.T) {
	st := store.New()
	_, err := newOrchestrator(&fakeSource{delay: time.Second}, st, 20*time.Millisecond).Run(context.Background())
	if !errors.Is(err, ErrFetchFailure) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline fetch failure, got %v", err)
	}
	if st.Loaded() {
		t.Fatal("store must stay unloaded")
	}
}
