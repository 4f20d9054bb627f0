package domain

// Metric names the numeric field that drives colour, axis and ranking
// across every view.
type Metric string

const (
	MetricCases            Metric = "cases"
	MetricDeaths           Metric = "deaths"
	MetricRecovered        Metric = "recovered"
	MetricActive           Metric = "active"
	MetricCasesPerMillion  Metric = "casesPerMillion"
	MetricDeathsPerMillion Metric = "deathsPerMillion"
)

// Metrics lists the selectable metrics in menu order.
var Metrics = []Metric{
	MetricCases,
	MetricDeaths,
	MetricRecovered,
	MetricActive,
	MetricCasesPerMillion,
	MetricDeathsPerMillion,
}

var metricLabels = map[Metric]string{
	MetricCases:            "Total Cases",
	MetricDeaths:           "Total Deaths",
	MetricRecovered:        "Total Recovered",
	MetricActive:           "Active Cases",
	MetricCasesPerMillion:  "Cases per Million",
	MetricDeathsPerMillion: "Deaths per Million",
}

// Label falls back to the raw metric name for unknown metrics.
func (m Metric) Label() string {
	if l, ok := metricLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Metric) Known() bool {
	_, ok := metricLabels[m]
	return ok
}

// Value reads the metric from a region. Unknown metrics read as 0 so they
// match nothing in ranked views.
func (m Metric) Value(r Region) float64 {
	switch m {
	case MetricCases:
		return float64(r.Cases)
	case MetricDeaths:
		return float64(r.Deaths)
	case MetricRecovered:
		return float64(r.Recovered)
	case MetricActive:
		return float64(r.Active)
	case MetricCasesPerMillion:
		return r.CasesPerOneMillion
	case MetricDeathsPerMillion:
		return r.DeathsPerOneMillion
	}
	return 0
}
