package store

import (
	"sync"
	"time"

	"covid-dashboard/internal/domain"
)

// Store owns the current snapshot. Readers get copies; a snapshot is only
// ever replaced as a whole.
type Store struct {
	mu      sync.RWMutex
	snap    *domain.Snapshot
	version uint64
	now     func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Load publishes global, regions and historical together.
func (s *Store) Load(global domain.GlobalStats, regions []domain.Region, historical *domain.HistoricalSeries) uint64 {
	owned := make([]domain.Region, len(regions))
	copy(owned, regions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.snap = &domain.Snapshot{
		Version:    s.version,
		LoadedAt:   s.now(),
		Global:     global,
		Regions:    owned,
		Historical: historical,
	}
	return s.version
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap != nil
}

// Snapshot returns a copy of the current snapshot and false when nothing
// has been loaded yet.
func (s *Store) Snapshot() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return domain.Snapshot{}, false
	}
	out := *s.snap
	out.Regions = make([]domain.Region, len(s.snap.Regions))
	copy(out.Regions, s.snap.Regions)
	return out, true
}

func (s *Store) Regions() []domain.Region {
	snap, _ := s.Snapshot()
	return snap.Regions
}

func (s *Store) Historical() *domain.HistoricalSeries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil
	}
	return s.snap.Historical
}

func (s *Store) Global() domain.GlobalStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return domain.GlobalStats{}
	}
	return s.snap.Global
}

// Reorder runs fn on a private copy of the regions and publishes the result
// as a new version. fn must only permute the slice. It is a no-op before the
// first load.
func (s *Store) Reorder(fn func([]domain.Region)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return 0
	}
	regions := make([]domain.Region, len(s.snap.Regions))
	copy(regions, s.snap.Regions)
	fn(regions)

	next := *s.snap
	s.version++
	next.Version = s.version
	next.Regions = regions
	s.snap = &next
	return s.version
}
