package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/filter"
	"covid-dashboard/internal/geo"
	"covid-dashboard/internal/projection"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

func newDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	ref, err := geo.Load()
	if err != nil {
		t.Fatalf("geo: %v", err)
	}
	return NewDispatcher(&config.Config{ChartWidth: 960, ChartHeight: 500}, ref, zerolog.Nop())
}

func snapshot(historical *domain.HistoricalSeries) domain.Snapshot {
	return domain.Snapshot{
		Version: 3,
		Regions: []domain.Region{
			{Country: "USA", Continent: "North America", CountryInfo: domain.CountryInfo{ISO3: "USA"}, Population: 334805269, Cases: 111820082, Deaths: 1219487, Recovered: 109814428, Active: 786167, TodayCases: 4},
			{Country: "India", Continent: "Asia", CountryInfo: domain.CountryInfo{ISO3: "IND"}, Population: 1406631776, Cases: 45035393, Deaths: 533570},
			{Country: "France", Continent: "Europe", CountryInfo: domain.CountryInfo{ISO3: "FRA"}, Population: 65584518, Cases: 40138560, Deaths: 167985},
			{Country: "Diamond Princess", Cases: 712, Deaths: 13},
			{Country: "Holy See", Continent: "Europe", Cases: 29},
		},
		Historical: historical,
	}
}

func series(n int) *domain.HistoricalSeries {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &domain.HistoricalSeries{}
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		s.Points = append(s.Points, domain.HistoricalPoint{
			Label: d.Format(domain.HistoricalDateLayout), Date: d,
			Cases: float64(1000 + i*10), Deaths: float64(10 + i),
		})
	}
	return s
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		7:         "7",
		1234567:   "1,234,567",
		673512.5:  "673,512.5",
		-1.5:      "-1.5",
		0.1234:    "0.123",
		999.99999: "1,000",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", in, got, want)
		}
	}
	if got := FormatPercent(1, 3, 1); got != "33.3%" {
		t.Errorf("unexpected percent %q", got)
	}
	if got := FormatPercent(1, 0, 2); got != "0%" {
		t.Errorf("unexpected percent for zero total %q", got)
	}
}

func TestDotRadius(t *testing.T) {
	if got := DotRadius(100, 100); got != maxDotRadius {
		t.Errorf("largest population must get the largest dot, got %v", got)
	}
	if got := DotRadius(25, 100); got != 16 {
		t.Errorf("sqrt scale: expected 16, got %v", got)
	}
	if got := DotRadius(0, 4_000_000); got != 16 {
		t.Errorf("missing population falls back to one million, got %v", got)
	}
	if got := DotRadius(10, 0); got != minDotRadius {
		t.Errorf("degenerate domain must give the smallest dot, got %v", got)
	}
}

func TestReds(t *testing.T) {
	if reds(0) != redStops[0] || reds(1) != redStops[len(redStops)-1] {
		t.Fatal("ramp endpoints must match the stops")
	}
	if reds(-3) != redStops[0] || reds(7) != redStops[len(redStops)-1] {
		t.Fatal("ramp must clamp")
	}
	if hexColor(colorNoData) != ColorNoData {
		t.Fatalf("no-data color mismatch: %s", hexColor(colorNoData))
	}
}

func TestDispatch_MissingHistoricalOnlyFailsTimeline(t *testing.T) {
	d := newDispatcher(t)
	frame := d.Dispatch(projection.Build(snapshot(nil), filter.Default()), FormatSVG)

	if len(frame.Views) != len(Kinds) {
		t.Fatalf("expected %d views, got %d", len(Kinds), len(frame.Views))
	}
	tl := frame.View(KindTimeline)
	if !tl.Failed() || !errors.Is(tl.Err, ErrRenderFailure) {
		t.Fatalf("timeline must fail with ErrRenderFailure, got %v", tl.Err)
	}
	if tl.Placeholder != "No historical data available" || len(tl.Image) == 0 {
		t.Errorf("timeline placeholder missing: %q", tl.Placeholder)
	}
	for _, kind := range []Kind{KindMap, KindBar, KindScatter, KindPie} {
		v := frame.View(kind)
		if v.Failed() {
			t.Errorf("%s must render, got %v", kind, v.Err)
		}
		if !bytes.Contains(v.Image, []byte("<svg")) {
			t.Errorf("%s: expected svg output", kind)
		}
	}
}

func TestDispatch_ShortSeriesIsPlaceholder(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(KindTimeline, projection.Build(snapshot(series(1)), filter.Default()), FormatSVG)
	if !v.Failed() || v.Placeholder == "" {
		t.Fatalf("single point series must fall back to the placeholder: %s", spew.Sdump(v.Placeholder, v.Err))
	}

	v = d.Render(KindTimeline, projection.Build(snapshot(series(90)), filter.Default()), FormatSVG)
	if v.Failed() {
		t.Fatalf("timeline: %v", v.Err)
	}
	if len(v.Elements) != 3 {
		t.Errorf("expected a marker every 30 days, got %d", len(v.Elements))
	}
	if v.Elements[0].Detail[0] != "Cases: 1,000" {
		t.Errorf("unexpected detail %v", v.Elements[0].Detail)
	}
}

func TestDispatch_NewFrameEveryTime(t *testing.T) {
	d := newDispatcher(t)
	p := projection.Build(snapshot(series(3)), filter.Default())
	a := d.Dispatch(p, FormatSVG)
	b := d.Dispatch(p, FormatSVG)
	if a == b || b.Seq != a.Seq+1 {
		t.Fatalf("expected distinct frames with increasing seq, got %d and %d", a.Seq, b.Seq)
	}
	for i := range a.Views {
		if a.Views[i] == b.Views[i] {
			t.Errorf("view %s reused between frames", a.Views[i].Kind)
		}
	}
	if a.Version != 3 || a.MetricLabel != "Total Cases" {
		t.Errorf("unexpected frame header %+v", a)
	}
}

func TestMap_LookupMiss(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(KindMap, projection.Build(snapshot(nil), filter.Default()), FormatSVG)
	if v.Failed() {
		t.Fatalf("map: %v", v.Err)
	}
	if len(v.Elements) != len(d.ref.Countries) {
		t.Fatalf("every reference country must be drawn, got %d", len(v.Elements))
	}
	if want := len(d.ref.Countries) - 3; v.Misses != want {
		t.Errorf("expected %d misses, got %d", want, v.Misses)
	}

	byKey := make(map[string]Element)
	for _, el := range v.Elements {
		byKey[el.Key] = el
	}
	usa := byKey["USA"]
	if usa.Fill == ColorNoData || usa.Value != 111820082 {
		t.Errorf("USA must be colored: %s", spew.Sdump(usa))
	}
	if usa.Detail[0] != "Cases: 111,820,082" || usa.Detail[3] != "Active: 786,167" {
		t.Errorf("unexpected USA detail %v", usa.Detail)
	}
	grl := byKey["GRL"]
	if grl.Fill != ColorNoData || grl.Detail[0] != "No data" {
		t.Errorf("Greenland must be no-data: %s", spew.Sdump(grl))
	}
}

func TestMap_ZeroMetricIsNoData(t *testing.T) {
	d := newDispatcher(t)
	f := filter.Default()
	f.SetMetric(domain.MetricRecovered)
	v := d.Render(KindMap, projection.Build(snapshot(nil), f), FormatSVG)
	for _, el := range v.Elements {
		if el.Key == "IND" && el.Fill != ColorNoData {
			t.Fatalf("zero recovered must be no-data, got %s", el.Fill)
		}
		if el.Key == "USA" && el.Fill == ColorNoData {
			t.Fatal("USA has recovered and must be colored")
		}
	}
}

func TestBar_ElementsFollowRanking(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(KindBar, projection.Build(snapshot(nil), filter.Default()), FormatSVG)
	if v.Failed() {
		t.Fatalf("bar: %v", v.Err)
	}
	var got []string
	for _, el := range v.Elements {
		got = append(got, el.Label)
	}
	want := "USA,India,France,Diamond Princess,Holy See"
	if strings.Join(got, ",") != want {
		t.Errorf("expected %s, got %v", want, got)
	}
	if v.Elements[1].Detail[0] != "Total Cases: 45,035,393" {
		t.Errorf("unexpected detail %v", v.Elements[1].Detail)
	}
}

func TestPie_Percentages(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(KindPie, projection.Build(snapshot(nil), filter.Default()), FormatSVG)
	if v.Failed() {
		t.Fatalf("pie: %v", v.Err)
	}
	if len(v.Elements) != 3 {
		t.Fatalf("missing continents are excluded, got %s", spew.Sdump(v.Elements))
	}
	if v.Elements[0].Key != "North America" || v.Elements[0].Detail[1] != "Percentage: 56.8%" {
		t.Errorf("unexpected leading slice %s", spew.Sdump(v.Elements[0]))
	}
}

func TestUnknownContinent_PlaceholdersWithoutFailure(t *testing.T) {
	d := newDispatcher(t)
	f := filter.Default()
	f.SetContinent("europe")
	frame := d.Dispatch(projection.Build(snapshot(series(2)), f), FormatSVG)
	if !frame.UnknownContinent {
		t.Fatal("lowercase continent is not in the vocabulary and must be flagged")
	}
	for _, kind := range []Kind{KindBar, KindScatter, KindPie} {
		v := frame.View(kind)
		if v.Failed() || v.Placeholder == "" || len(v.Elements) != 0 {
			t.Errorf("%s: expected an empty-state placeholder, got %q %v", kind, v.Placeholder, v.Err)
		}
	}
	if len(frame.Table.Rows) != 0 {
		t.Errorf("table must be empty, got %d rows", len(frame.Table.Rows))
	}
}

func TestRender_PNG(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(KindScatter, projection.Build(snapshot(nil), filter.Default()), FormatPNG)
	if v.Failed() {
		t.Fatalf("scatter: %v", v.Err)
	}
	if !bytes.HasPrefix(v.Image, []byte("\x89PNG")) {
		t.Fatal("expected png output")
	}
	if got := v.Elements[0].Detail[3]; got != "Death Rate: 1.09%" {
		t.Errorf("unexpected death rate %q", got)
	}
}

func TestRender_UnknownKind(t *testing.T) {
	d := newDispatcher(t)
	v := d.Render(Kind("radar"), projection.Build(snapshot(nil), filter.Default()), FormatSVG)
	if !errors.Is(v.Err, ErrRenderFailure) {
		t.Fatalf("expected render failure, got %v", v.Err)
	}
}

func TestTable(t *testing.T) {
	table := BuildTable(snapshot(nil).Regions)
	if len(table.Rows) != 5 || len(table.Columns) != 8 {
		t.Fatalf("unexpected table shape %d x %d", len(table.Rows), len(table.Columns))
	}
	dp := table.Rows[3]
	if dp.Cells[1] != "N/A" || dp.Cells[7] != "0" {
		t.Errorf("unexpected cells %v", dp.Cells)
	}
	if !table.Rows[0].RisingToday || table.Rows[1].RisingToday {
		t.Error("rising flag must follow todayCases")
	}

	var buf bytes.Buffer
	if err := table.WriteText(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 6 {
		t.Errorf("expected 6 lines, got %d", lines)
	}
}
