package domain

import "time"

// ContinentAll is the continent filter value that matches every region.
const ContinentAll = "all"

type CountryInfo struct {
	ID   int64   `json:"_id"`
	ISO2 string  `json:"iso2"`
	ISO3 string  `json:"iso3"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Flag string  `json:"flag"`
}

// Region is one row of per-country metrics as published by disease.sh.
// Missing numeric fields decode to zero; a missing continent is "".
type Region struct {
	Country             string      `json:"country"`
	Continent           string      `json:"continent"`
	CountryInfo         CountryInfo `json:"countryInfo"`
	Population          int64       `json:"population"`
	Updated             int64       `json:"updated"`
	Cases               int64       `json:"cases"`
	TodayCases          int64       `json:"todayCases"`
	Deaths              int64       `json:"deaths"`
	TodayDeaths         int64       `json:"todayDeaths"`
	Recovered           int64       `json:"recovered"`
	TodayRecovered      int64       `json:"todayRecovered"`
	Active              int64       `json:"active"`
	Critical            int64       `json:"critical"`
	Tests               float64     `json:"tests"`
	CasesPerOneMillion  float64     `json:"casesPerOneMillion"`
	DeathsPerOneMillion float64     `json:"deathsPerOneMillion"`
}

// GlobalStats is the worldwide aggregate shown on the summary cards.
type GlobalStats struct {
	Updated             int64   `json:"updated"`
	Cases               int64   `json:"cases"`
	TodayCases          int64   `json:"todayCases"`
	Deaths              int64   `json:"deaths"`
	TodayDeaths         int64   `json:"todayDeaths"`
	Recovered           int64   `json:"recovered"`
	TodayRecovered      int64   `json:"todayRecovered"`
	Active              int64   `json:"active"`
	Critical            int64   `json:"critical"`
	CasesPerOneMillion  float64 `json:"casesPerOneMillion"`
	DeathsPerOneMillion float64 `json:"deathsPerOneMillion"`
	Population          int64   `json:"population"`
	AffectedCountries   int64   `json:"affectedCountries"`
}

func (g GlobalStats) UpdatedAt() time.Time {
	return time.UnixMilli(g.Updated)
}

// Snapshot is everything a single successful load produces.
type Snapshot struct {
	Version    uint64
	LoadedAt   time.Time
	Global     GlobalStats
	Regions    []Region
	Historical *HistoricalSeries
}

// Continents returns the distinct non-empty continent names in first-seen order.
func Continents(regions []Region) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range regions {
		if r.Continent == "" || seen[r.Continent] {
			continue
		}
		seen[r.Continent] = true
		out = append(out, r.Continent)
	}
	return out
}
