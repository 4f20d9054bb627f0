package view

import (
	"errors"
	"time"

	"covid-dashboard/internal/projection"

	"github.com/wcharczuk/go-chart/v2"
)

// timelineMarkerEvery matches the hover markers to roughly one per month.
const timelineMarkerEvery = 30

var errShortSeries = errors.New("historical series has fewer than two points")

func (d *Dispatcher) renderTimeline(p projection.Projection, format Format) *View {
	v := &View{Kind: KindTimeline, Title: "Global Cases Over Time"}
	h := p.Historical
	if h.Len() < 2 {
		d.fail(v, format, "No historical data available", errShortSeries)
		return v
	}

	xs := make([]time.Time, len(h.Points))
	ys := make([]float64, len(h.Points))
	var markX []time.Time
	var markY []float64
	var maxVal float64
	for i, pt := range h.Points {
		xs[i] = pt.Date
		ys[i] = pt.Cases
		if pt.Cases > maxVal {
			maxVal = pt.Cases
		}
		if i%timelineMarkerEvery != 0 {
			continue
		}
		markX = append(markX, pt.Date)
		markY = append(markY, pt.Cases)
		v.Elements = append(v.Elements, Element{
			Key:   pt.Label,
			Label: pt.Date.Format("1/2/2006"),
			Value: pt.Cases,
			Fill:  hexColor(colorAccent),
			Detail: []string{
				"Cases: " + FormatNumber(pt.Cases),
				"Deaths: " + FormatNumber(pt.Deaths),
				"Recovered: " + FormatNumber(pt.Recovered),
			},
		})
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	minX, maxX := chart.TimeToFloat64(xs[0]), chart.TimeToFloat64(xs[len(xs)-1])
	if maxX <= minX {
		maxX = minX + float64(24*time.Hour)
	}

	ch := chart.Chart{
		Title:      v.Title,
		TitleStyle: chart.Style{FontColor: colorText, FontSize: 12},
		Width:      d.width,
		Height:     d.height,
		Background: chart.Style{FillColor: colorBackground, Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: colorBackground},
		XAxis: chart.XAxis{
			Style:          chart.Style{FontColor: colorMuted, FontSize: 9, StrokeColor: colorMuted},
			Range:          &chart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: monthFormatter,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: colorMuted, FontSize: 9, StrokeColor: colorMuted},
			Range:          &chart.ContinuousRange{Min: 0, Max: maxVal * 1.05},
			ValueFormatter: compactFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Cases",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: colorAccent, StrokeWidth: 3},
			},
			chart.TimeSeries{
				Name:    "Markers",
				XValues: markX,
				YValues: markY,
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4, DotColor: colorAccent},
			},
		},
	}
	img, err := renderChart(ch, format)
	if err != nil {
		d.fail(v, format, "No historical data available", err)
		return v
	}
	v.Image = img
	return v
}

func monthFormatter(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("Jan 2006")
	case float64:
		return time.Unix(0, int64(t)).UTC().Format("Jan 2006")
	}
	return ""
}
