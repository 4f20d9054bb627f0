package store

import (
	"sync"
	"testing"

	"covid-dashboard/internal/domain"
)

func sampleRegions() []domain.Region {
	return []domain.Region{
		{Country: "A", Continent: "X", Cases: 100, Deaths: 1},
		{Country: "B", Continent: "Y"},
	}
}

func TestStore_EmptyBeforeLoad(t *testing.T) {
	s := New()
	if s.Loaded() {
		t.Fatal("new store must not report loaded")
	}
	if _, ok := s.Snapshot(); ok {
		t.Fatal("expected no snapshot")
	}
	if s.Regions() != nil && len(s.Regions()) != 0 {
		t.Fatal("expected no regions")
	}
	if s.Historical() != nil {
		t.Fatal("expected no historical series")
	}
	if v := s.Reorder(func([]domain.Region) { t.Fatal("reorder must not run before load") }); v != 0 {
		t.Fatalf("expected version 0, got %d", v)
	}
}

func TestStore_LoadPublishesEverything(t *testing.T) {
	s := New()
	hist := &domain.HistoricalSeries{Points: []domain.HistoricalPoint{{Label: "1/1/21", Cases: 1}}}
	v := s.Load(domain.GlobalStats{Cases: 100}, sampleRegions(), hist)
	if v != 1 {
		t.Fatalf("expected version 1, got %d", v)
	}

	snap, ok := s.Snapshot()
	if !ok {
		t.Fatal("expected snapshot")
	}
	if snap.Global.Cases != 100 || len(snap.Regions) != 2 || snap.Historical != hist {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("expected load time")
	}
}

func TestStore_ReadViewsAreCopies(t *testing.T) {
	s := New()
	input := sampleRegions()
	s.Load(domain.GlobalStats{}, input, nil)

	input[0].Country = "mutated"
	got := s.Regions()
	if got[0].Country != "A" {
		t.Fatal("store must not alias the caller's slice")
	}
	got[0].Country = "mutated"
	if s.Regions()[0].Country != "A" {
		t.Fatal("read view must not alias the store")
	}
}

func TestStore_ReorderBumpsVersion(t *testing.T) {
	s := New()
	s.Load(domain.GlobalStats{}, sampleRegions(), nil)
	before, _ := s.Snapshot()

	v := s.Reorder(func(r []domain.Region) { r[0], r[1] = r[1], r[0] })
	if v != 2 {
		t.Fatalf("expected version 2, got %d", v)
	}
	after, _ := s.Snapshot()
	if after.Regions[0].Country != "B" {
		t.Fatalf("reorder not applied: %+v", after.Regions)
	}
	if before.Regions[0].Country != "A" {
		t.Fatal("earlier snapshot must be unaffected")
	}
	if !after.LoadedAt.Equal(before.LoadedAt) {
		t.Fatal("reorder must keep the load time")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := New()
	s.Load(domain.GlobalStats{}, sampleRegions(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap, ok := s.Snapshot()
				if !ok || len(snap.Regions) != 2 {
					t.Errorf("torn snapshot: %+v", snap)
					return
				}
			}
		}()
	}
	for j := 0; j < 50; j++ {
		s.Reorder(func(r []domain.Region) { r[0], r[1] = r[1], r[0] })
	}
	wg.Wait()
}
