package view

import (
	"math"

	"covid-dashboard/internal/projection"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	minDotRadius = 2.0
	maxDotRadius = 30.0
	// regions without a population still get a visible dot
	defaultPopulation = 1_000_000
)

// DotRadius is a square-root scale from [0, maxPopulation] onto [2, 30].
func DotRadius(population, maxPopulation float64) float64 {
	if population <= 0 {
		population = defaultPopulation
	}
	if maxPopulation <= 0 {
		return minDotRadius
	}
	t := math.Sqrt(math.Min(population, maxPopulation) / maxPopulation)
	return minDotRadius + (maxDotRadius-minDotRadius)*t
}

func (d *Dispatcher) renderScatter(p projection.Projection, format Format) *View {
	v := &View{Kind: KindScatter, Title: "Cases vs Deaths (log scale)"}
	if len(p.Scatter) == 0 {
		d.placeholder(v, format, "No data for the current filter")
		return v
	}

	var maxCases, maxDeaths, maxPop float64
	for _, r := range p.Scatter {
		maxCases = math.Max(maxCases, float64(r.Cases))
		maxDeaths = math.Max(maxDeaths, float64(r.Deaths))
		maxPop = math.Max(maxPop, float64(r.Population))
	}

	xs := make([]float64, len(p.Scatter))
	ys := make([]float64, len(p.Scatter))
	radii := make([]float64, len(p.Scatter))
	v.Elements = make([]Element, 0, len(p.Scatter))
	for i, r := range p.Scatter {
		xs[i] = math.Log10(float64(r.Cases))
		ys[i] = math.Log10(float64(r.Deaths))
		radii[i] = DotRadius(float64(r.Population), maxPop)
		v.Elements = append(v.Elements, Element{
			Key:   r.Country,
			Label: r.Country,
			Value: float64(r.Deaths),
			Fill:  hexColor(colorAccent),
			Detail: []string{
				"Cases: " + FormatCount(r.Cases),
				"Deaths: " + FormatCount(r.Deaths),
				"Population: " + FormatCount(r.Population),
				"Death Rate: " + FormatPercent(float64(r.Deaths), float64(r.Cases), 2),
			},
		})
	}

	xRange, xTicks := logAxis(maxCases)
	yRange, yTicks := logAxis(maxDeaths)
	ch := chart.Chart{
		Title:      v.Title,
		TitleStyle: chart.Style{FontColor: colorText, FontSize: 12},
		Width:      d.width,
		Height:     d.height,
		Background: chart.Style{FillColor: colorBackground, Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: colorBackground},
		XAxis: chart.XAxis{
			Name:      "Total Cases",
			NameStyle: chart.Style{FontColor: colorMuted},
			Style:     chart.Style{FontColor: colorMuted, FontSize: 9, StrokeColor: colorMuted},
			Range:     xRange,
			Ticks:     xTicks,
		},
		YAxis: chart.YAxis{
			Name:      "Total Deaths",
			NameStyle: chart.Style{FontColor: colorMuted},
			Style:     chart.Style{FontColor: colorMuted, FontSize: 9, StrokeColor: colorMuted},
			Range:     yRange,
			Ticks:     yTicks,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Countries",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotColor:    drawing.Color{R: colorAccent.R, G: colorAccent.G, B: colorAccent.B, A: 153},
					DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
						return radii[index]
					},
				},
			},
		},
	}
	img, err := renderChart(ch, format)
	if err != nil {
		d.fail(v, format, "Scatter plot unavailable", err)
		return v
	}
	v.Image = img
	return v
}

// logAxis builds a log10 axis from 1 to the next power of ten above upper,
// one tick per decade.
func logAxis(upper float64) (*chart.ContinuousRange, []chart.Tick) {
	top := math.Ceil(math.Log10(math.Max(upper, 1)))
	if top < 1 {
		top = 1
	}
	ticks := make([]chart.Tick, 0, int(top)+1)
	for k := 0.0; k <= top; k++ {
		ticks = append(ticks, chart.Tick{Value: k, Label: compact(math.Pow(10, k))})
	}
	return &chart.ContinuousRange{Min: 0, Max: top}, ticks
}
