// Package filter holds the dashboard's selection: which metric drives the
// views, which continent is shown and what the table search matches.
package filter

import "covid-dashboard/internal/domain"

// State is a plain value holder. Setters accept any value; unknown metrics
// or continents simply match nothing downstream.
type State struct {
	Metric     domain.Metric `json:"metric"`
	Continent  string        `json:"continent"`
	SearchTerm string        `json:"searchTerm"`
}

func Default() State {
	return State{Metric: domain.MetricCases, Continent: domain.ContinentAll}
}

func (s *State) SetMetric(m domain.Metric) { s.Metric = m }

func (s *State) SetContinent(c string) { s.Continent = c }

func (s *State) SetSearch(term string) { s.SearchTerm = term }

func (s *State) Reset() { *s = Default() }

// Snapshot returns a copy for the projection engine to read.
func (s *State) Snapshot() State { return *s }

func (s State) Equal(o State) bool { return s == o }
