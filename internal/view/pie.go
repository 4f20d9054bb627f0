package view

import (
	"covid-dashboard/internal/projection"

	"github.com/wcharczuk/go-chart/v2"
)

func (d *Dispatcher) renderPie(p projection.Projection, format Format) *View {
	v := &View{Kind: KindPie, Title: "Distribution by Continent: " + p.Metric.Label()}

	var total float64
	groups := make([]projection.Group, 0, len(p.ContinentTotals))
	for _, g := range p.ContinentTotals {
		if g.Value > 0 {
			groups = append(groups, g)
			total += g.Value
		}
	}
	if len(groups) == 0 {
		d.placeholder(v, format, "No continent data available")
		return v
	}

	values := make([]chart.Value, 0, len(groups))
	v.Elements = make([]Element, 0, len(groups))
	for i, g := range groups {
		fill := pieColors[i%len(pieColors)]
		pct := FormatPercent(g.Value, total, 1)
		values = append(values, chart.Value{
			Label: g.Key + " " + pct,
			Value: g.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: colorBackground, StrokeWidth: 2, FontColor: colorBackground},
		})
		v.Elements = append(v.Elements, Element{
			Key:   g.Key,
			Label: g.Key,
			Value: g.Value,
			Fill:  hexColor(fill),
			Detail: []string{
				p.Metric.Label() + ": " + FormatNumber(g.Value),
				"Percentage: " + pct,
			},
		})
	}

	totalLabel := "Total: " + FormatNumber(total)
	ch := chart.PieChart{
		Title:      v.Title,
		TitleStyle: chart.Style{FontColor: colorText, FontSize: 12},
		Width:      d.width,
		Height:     d.height,
		Background: chart.Style{FillColor: colorBackground},
		Canvas:     chart.Style{FillColor: colorBackground},
		Values:     values,
		Elements: []chart.Renderable{
			func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
				if defaults.Font != nil {
					r.SetFont(defaults.Font)
				}
				r.SetFontColor(colorText)
				r.SetFontSize(12)
				r.Text(totalLabel, 16, d.height-16)
			},
		},
	}
	img, err := renderChart(ch, format)
	if err != nil {
		d.fail(v, format, "Pie chart unavailable", err)
		return v
	}
	v.Image = img
	return v
}
