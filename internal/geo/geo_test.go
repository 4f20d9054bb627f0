package geo

import (
	"testing"

	"covid-dashboard/internal/domain"
)

func TestLoad(t *testing.T) {
	ref, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ref.Countries) < 150 {
		t.Fatalf("reference looks truncated: %d countries", len(ref.Countries))
	}
	seen := make(map[string]bool)
	for _, c := range ref.Countries {
		if len(c.ISO3) != 3 {
			t.Errorf("%s: bad iso3 %q", c.Name, c.ISO3)
		}
		if seen[c.ISO3] {
			t.Errorf("duplicate iso3 %s", c.ISO3)
		}
		seen[c.ISO3] = true
		if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
			t.Errorf("%s: coordinates out of range", c.Name)
		}
	}
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex([]domain.Region{
		{Country: "USA", CountryInfo: domain.CountryInfo{ISO3: "USA"}, Cases: 10},
		{Country: "Bosnia", Cases: 5},
	})

	if r, ok := idx.Lookup(Country{Name: "United States of America", ISO3: "USA"}); !ok || r.Cases != 10 {
		t.Errorf("expected iso3 match, got %+v %v", r, ok)
	}
	if r, ok := idx.Lookup(Country{Name: "bosnia", ISO3: "BIH"}); !ok || r.Cases != 5 {
		t.Errorf("expected name fallback, got %+v %v", r, ok)
	}
	if _, ok := idx.Lookup(Country{Name: "Greenland", ISO3: "GRL"}); ok {
		t.Error("expected lookup miss")
	}
}
