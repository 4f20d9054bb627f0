// Package geo holds the country reference the map view draws over.
package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"covid-dashboard/internal/domain"
)

//go:embed countries.json
var countriesJSON []byte

type Country struct {
	Name string  `json:"name"`
	ISO3 string  `json:"iso3"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type Reference struct {
	Countries []Country
}

func Load() (*Reference, error) {
	var countries []Country
	if err := json.Unmarshal(countriesJSON, &countries); err != nil {
		return nil, fmt.Errorf("failed to decode country reference: %w", err)
	}
	return &Reference{Countries: countries}, nil
}

// Index resolves reference countries against one set of region records.
type Index struct {
	byISO3 map[string]domain.Region
	byName map[string]domain.Region
}

func NewIndex(regions []domain.Region) *Index {
	idx := &Index{
		byISO3: make(map[string]domain.Region, len(regions)),
		byName: make(map[string]domain.Region, len(regions)),
	}
	for _, r := range regions {
		if r.CountryInfo.ISO3 != "" {
			idx.byISO3[strings.ToUpper(r.CountryInfo.ISO3)] = r
		}
		idx.byName[strings.ToLower(r.Country)] = r
	}
	return idx
}

// Lookup matches by ISO3 first and falls back to the country name.
// A false result is a LookupMiss, not an error.
func (i *Index) Lookup(c Country) (domain.Region, bool) {
	if r, ok := i.byISO3[strings.ToUpper(c.ISO3)]; ok {
		return r, true
	}
	r, ok := i.byName[strings.ToLower(c.Name)]
	return r, ok
}
