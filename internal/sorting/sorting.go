// Package sorting orders table rows by a column. String columns use an
// English collator; every other column compares numerically. Sorts are
// stable, so equal keys keep their previous relative order.
package sorting

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"covid-dashboard/internal/domain"
)

type Field string

const (
	FieldCountry             Field = "country"
	FieldContinent           Field = "continent"
	FieldPopulation          Field = "population"
	FieldCases               Field = "cases"
	FieldTodayCases          Field = "todayCases"
	FieldDeaths              Field = "deaths"
	FieldTodayDeaths         Field = "todayDeaths"
	FieldRecovered           Field = "recovered"
	FieldTodayRecovered      Field = "todayRecovered"
	FieldActive              Field = "active"
	FieldCasesPerOneMillion  Field = "casesPerOneMillion"
	FieldDeathsPerOneMillion Field = "deathsPerOneMillion"
)

type kind int

const (
	kindUnknown kind = iota
	kindString
	kindNumber
)

var stringFields = map[Field]func(domain.Region) string{
	FieldCountry:   func(r domain.Region) string { return r.Country },
	FieldContinent: func(r domain.Region) string { return r.Continent },
}

var numberFields = map[Field]func(domain.Region) float64{
	FieldPopulation:          func(r domain.Region) float64 { return float64(r.Population) },
	FieldCases:               func(r domain.Region) float64 { return float64(r.Cases) },
	FieldTodayCases:          func(r domain.Region) float64 { return float64(r.TodayCases) },
	FieldDeaths:              func(r domain.Region) float64 { return float64(r.Deaths) },
	FieldTodayDeaths:         func(r domain.Region) float64 { return float64(r.TodayDeaths) },
	FieldRecovered:           func(r domain.Region) float64 { return float64(r.Recovered) },
	FieldTodayRecovered:      func(r domain.Region) float64 { return float64(r.TodayRecovered) },
	FieldActive:              func(r domain.Region) float64 { return float64(r.Active) },
	FieldCasesPerOneMillion:  func(r domain.Region) float64 { return r.CasesPerOneMillion },
	FieldDeathsPerOneMillion: func(r domain.Region) float64 { return r.DeathsPerOneMillion },
}

func (f Field) kind() kind {
	if _, ok := stringFields[f]; ok {
		return kindString
	}
	if _, ok := numberFields[f]; ok {
		return kindNumber
	}
	return kindUnknown
}

// Known reports whether f names a sortable column.
func (f Field) Known() bool { return f.kind() != kindUnknown }

// SortBy reorders records in place. Unknown fields leave the order as is.
func SortBy(records []domain.Region, field Field, ascending bool) {
	var cmp func(a, b domain.Region) int
	switch field.kind() {
	case kindString:
		get := stringFields[field]
		coll := collate.New(language.English)
		cmp = func(a, b domain.Region) int { return coll.CompareString(get(a), get(b)) }
	case kindNumber:
		get := numberFields[field]
		cmp = func(a, b domain.Region) int {
			x, y := get(a), get(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	default:
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

// Directions remembers the last direction per column. Toggling a column
// flips only that column; revisiting a column continues from its own last
// direction rather than from whichever column was sorted most recently.
type Directions struct {
	mu        sync.Mutex
	ascending map[Field]bool
}

func NewDirections() *Directions {
	return &Directions{ascending: make(map[Field]bool)}
}

// Toggle flips field's direction and returns it. The first toggle of a
// column sorts ascending.
func (d *Directions) Toggle(field Field) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ascending[field] = !d.ascending[field]
	return d.ascending[field]
}

// Last returns the remembered direction and whether the column was ever sorted.
func (d *Directions) Last(field Field) (ascending bool, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ascending, ok = d.ascending[field]
	return ascending, ok
}
