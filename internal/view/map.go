package view

import (
	"math"

	"covid-dashboard/internal/domain"
	"covid-dashboard/internal/geo"
	"covid-dashboard/internal/projection"
)

const (
	mapTop       = 44
	mapBottom    = 56
	mapSide      = 16
	mapDotRadius = 5
	legendSteps  = 5
	// the reference has nothing south of this, keep the vertical space for land
	mapMinLat = -60.0
	mapMaxLat = 85.0
)

func (d *Dispatcher) renderMap(p projection.Projection, format Format) *View {
	v := &View{Kind: KindMap, Title: "World Map: " + p.Metric.Label()}

	idx := geo.NewIndex(p.Charts)
	var maxVal float64
	for _, r := range p.Charts {
		if val := p.Metric.Value(r); val > maxVal {
			maxVal = val
		}
	}
	scale := sequential{max: maxVal}

	c, err := newCanvas(d.width, d.height, format)
	if err != nil {
		d.fail(v, format, "Map unavailable", err)
		return v
	}
	c.text(v.Title, mapSide, 28, 14, colorText)

	plotW := float64(d.width - 2*mapSide)
	plotH := float64(d.height - mapTop - mapBottom)
	project := func(lat, lon float64) (int, int) {
		lat = math.Max(mapMinLat, math.Min(mapMaxLat, lat))
		x := mapSide + int((lon+180)/360*plotW)
		y := mapTop + int((mapMaxLat-lat)/(mapMaxLat-mapMinLat)*plotH)
		return x, y
	}

	v.Elements = make([]Element, 0, len(d.ref.Countries))
	for _, country := range d.ref.Countries {
		x, y := project(country.Lat, country.Lon)
		el := Element{Key: country.ISO3, Label: country.Name}

		r, ok := idx.Lookup(country)
		val := 0.0
		if ok {
			val = p.Metric.Value(r)
		}
		if !ok || val <= 0 {
			v.Misses++
			el.Fill = ColorNoData
			el.Detail = []string{"No data"}
			if ok {
				el.Label = r.Country
				el.Detail = regionDetail(r)
			}
			c.dot(x, y, mapDotRadius, colorNoData)
			v.Elements = append(v.Elements, el)
			continue
		}

		fill := scale.color(val)
		el.Label = r.Country
		el.Value = val
		el.Fill = hexColor(fill)
		el.Detail = regionDetail(r)
		c.dot(x, y, mapDotRadius, fill)
		v.Elements = append(v.Elements, el)
	}

	d.drawLegend(c, scale)

	img, err := c.bytes()
	if err != nil {
		d.fail(v, format, "Map unavailable", err)
		return v
	}
	v.Image = img
	return v
}

func (d *Dispatcher) drawLegend(c *canvas, scale sequential) {
	const swatch = 14
	y := d.height - mapBottom + 18
	x := mapSide
	c.dot(x+swatch/2, y+swatch/2, swatch/2, colorNoData)
	c.text("No data", x+swatch+6, y+swatch-2, 10, colorMuted)
	x += 90
	for i := 0; i < legendSteps; i++ {
		t := float64(i) / float64(legendSteps-1)
		c.rect(x, y, swatch*3, swatch, reds(t))
		c.text(compact(t*scale.max), x, y+swatch+14, 10, colorMuted)
		x += swatch*3 + 8
	}
}

// regionDetail is the hover summary for a country on the map.
func regionDetail(r domain.Region) []string {
	return []string{
		"Cases: " + FormatCount(r.Cases),
		"Deaths: " + FormatCount(r.Deaths),
		"Recovered: " + FormatCount(r.Recovered),
		"Active: " + FormatCount(r.Active),
	}
}
