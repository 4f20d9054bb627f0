package projection

import (
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/filter"
)

// Projection is everything the views need for one filter state. It is
// derived on every change and never stored.
type Projection struct {
	Version    uint64             `json:"version"`
	Filter     filter.State       `json:"filter"`
	Metric     domain.Metric      `json:"metric"`
	Global     domain.GlobalStats `json:"global"`
	Continents []string           `json:"continents"`

	// Charts honours the continent filter only; Table adds the search term.
	Charts []domain.Region `json:"-"`
	Table  []domain.Region `json:"-"`

	Top             []domain.Region          `json:"-"`
	ContinentTotals []Group                  `json:"continentTotals"`
	Scatter         []domain.Region          `json:"-"`
	Historical      *domain.HistoricalSeries `json:"-"`

	// UnknownContinent is set when a specific continent was requested that
	// the snapshot never mentions, so the empty result is not a silent one.
	UnknownContinent bool `json:"unknownContinent"`
}

func Build(snap domain.Snapshot, f filter.State) Projection {
	continents := domain.Continents(snap.Regions)
	charts := FilterByContinent(snap.Regions, f.Continent)

	p := Projection{
		Version:         snap.Version,
		Filter:          f,
		Metric:          f.Metric,
		Global:          snap.Global,
		Continents:      continents,
		Charts:          charts,
		Table:           FilterBySearch(charts, f.SearchTerm),
		Top:             TopN(charts, f.Metric, TopLimit),
		ContinentTotals: GroupTotals(charts, f.Metric, GroupByContinent),
		Scatter:         ScatterPairs(charts),
		Historical:      snap.Historical,
	}
	if f.Continent != domain.ContinentAll {
		p.UnknownContinent = true
		for _, c := range continents {
			if c == f.Continent {
				p.UnknownContinent = false
				break
			}
		}
	}
	return p
}
