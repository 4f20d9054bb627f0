// Package projection derives the filtered, ranked and grouped views of a
// snapshot. Every function is pure: inputs are never modified and ties keep
// their input order.
package projection

import (
	"sort"
	"strings"

	"covid-dashboard/internal/domain"
)

// TopLimit is the number of regions shown in ranked views.
const TopLimit = 20

// GroupField selects the key used by GroupSum.
type GroupField string

const (
	GroupByContinent GroupField = "continent"
	GroupByCountry   GroupField = "country"
)

func (g GroupField) key(r domain.Region) string {
	switch g {
	case GroupByContinent:
		return r.Continent
	case GroupByCountry:
		return r.Country
	}
	return ""
}

// FilterByContinent keeps regions whose continent equals continent exactly.
// "all" returns every region.
func FilterByContinent(records []domain.Region, continent string) []domain.Region {
	if continent == domain.ContinentAll {
		return clone(records)
	}
	out := make([]domain.Region, 0, len(records))
	for _, r := range records {
		if r.Continent == continent {
			out = append(out, r)
		}
	}
	return out
}

// FilterBySearch keeps regions whose country or continent contains term,
// ignoring case.
func FilterBySearch(records []domain.Region, term string) []domain.Region {
	if term == "" {
		return clone(records)
	}
	needle := strings.ToLower(term)
	out := make([]domain.Region, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Country), needle) ||
			strings.Contains(strings.ToLower(r.Continent), needle) {
			out = append(out, r)
		}
	}
	return out
}

// TopN ranks regions with a positive metric value, largest first.
// Zero and missing values never appear in ranked views.
func TopN(records []domain.Region, metric domain.Metric, n int) []domain.Region {
	out := make([]domain.Region, 0, len(records))
	for _, r := range records {
		if metric.Value(r) > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return metric.Value(out[i]) > metric.Value(out[j])
	})
	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GroupSum totals metric per distinct non-empty group key.
func GroupSum(records []domain.Region, metric domain.Metric, field GroupField) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		k := field.key(r)
		if k == "" {
			continue
		}
		out[k] += metric.Value(r)
	}
	return out
}

// Group is one entry of an ordered GroupSum.
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// GroupTotals is GroupSum ordered by value, largest first; ties keep the
// order in which keys first appear in records.
func GroupTotals(records []domain.Region, metric domain.Metric, field GroupField) []Group {
	sums := GroupSum(records, metric, field)
	out := make([]Group, 0, len(sums))
	seen := make(map[string]bool, len(sums))
	for _, r := range records {
		k := field.key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Group{Key: k, Value: sums[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// ScatterPairs keeps regions that can sit on a log-log cases/deaths plot.
func ScatterPairs(records []domain.Region) []domain.Region {
	out := make([]domain.Region, 0, len(records))
	for _, r := range records {
		if r.Cases > 0 && r.Deaths > 0 {
			out = append(out, r)
		}
	}
	return out
}

func clone(records []domain.Region) []domain.Region {
	if records == nil {
		return nil
	}
	out := make([]domain.Region, len(records))
	copy(out, records)
	return out
}
