package view

import (
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/projection"

	"github.com/wcharczuk/go-chart/v2"
)

const barSpacing = 6

func (d *Dispatcher) renderBar(p projection.Projection, format Format) *View {
	v := &View{Kind: KindBar, Title: "Top 20 Countries: " + p.Metric.Label()}
	if len(p.Top) == 0 {
		d.placeholder(v, format, "No data for the current filter")
		return v
	}

	var maxVal float64
	bars := make([]chart.Value, 0, len(p.Top))
	v.Elements = make([]Element, 0, len(p.Top))
	for i, r := range p.Top {
		val := p.Metric.Value(r)
		if val > maxVal {
			maxVal = val
		}
		// darkest for the leader, fading down the ranking
		fill := reds(1 - 0.7*float64(i)/float64(len(p.Top)))
		bars = append(bars, chart.Value{
			Label: shortLabel(r),
			Value: val,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
		v.Elements = append(v.Elements, Element{
			Key:    r.Country,
			Label:  r.Country,
			Value:  val,
			Fill:   hexColor(fill),
			Detail: []string{p.Metric.Label() + ": " + FormatNumber(val)},
		})
	}

	barWidth := (d.width-120)/len(bars) - barSpacing
	if barWidth < 4 {
		barWidth = 4
	}
	ch := chart.BarChart{
		Title:      v.Title,
		TitleStyle: chart.Style{FontColor: colorText, FontSize: 12},
		Width:      d.width,
		Height:     d.height,
		Background: chart.Style{FillColor: colorBackground, Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: colorBackground},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{FontColor: colorMuted, FontSize: 8, StrokeColor: colorMuted},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: colorMuted, FontSize: 9, StrokeColor: colorMuted},
			Range:          &chart.ContinuousRange{Min: 0, Max: maxVal * 1.1},
			ValueFormatter: compactFormatter,
		},
		Bars: bars,
	}
	img, err := renderChart(ch, format)
	if err != nil {
		d.fail(v, format, "Bar chart unavailable", err)
		return v
	}
	v.Image = img
	return v
}

// shortLabel keeps twenty bars legible on the x axis.
func shortLabel(r domain.Region) string {
	if r.CountryInfo.ISO3 != "" {
		return r.CountryInfo.ISO3
	}
	if len([]rune(r.Country)) > 8 {
		return string([]rune(r.Country)[:7]) + "."
	}
	return r.Country
}

func compactFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return compact(f)
	}
	return ""
}
