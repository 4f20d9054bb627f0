package view

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// canvas wraps a raw go-chart renderer for views that draw their own marks.
type canvas struct {
	r             chart.Renderer
	width, height int
}

func provider(format Format) chart.RendererProvider {
	if format == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

func newCanvas(width, height int, format Format) (*canvas, error) {
	r, err := provider(format)(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)
	c := &canvas{r: r, width: width, height: height}
	c.rect(0, 0, width, height, colorBackground)
	return c, nil
}

func (c *canvas) rect(x, y, w, h int, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeWidth(0)
	c.r.MoveTo(x, y)
	c.r.LineTo(x+w, y)
	c.r.LineTo(x+w, y+h)
	c.r.LineTo(x, y+h)
	c.r.Close()
	c.r.Fill()
}

// dot fills a circle as two half arcs; a single full arc collapses to
// nothing in SVG.
func (c *canvas) dot(x, y int, radius float64, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeWidth(0)
	c.r.MoveTo(x+int(radius), y)
	c.r.ArcTo(x, y, radius, radius, 0, math.Pi)
	c.r.ArcTo(x, y, radius, radius, math.Pi, math.Pi)
	c.r.Close()
	c.r.Fill()
}

func (c *canvas) text(s string, x, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(color)
	c.r.Text(s, x, y)
}

func (c *canvas) centeredText(s string, y int, size float64, color drawing.Color) {
	c.r.SetFontSize(size)
	box := c.r.MeasureText(s)
	c.text(s, (c.width-box.Width())/2, y, size, color)
}

func (c *canvas) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPlaceholder(width, height int, format Format, title, msg string) ([]byte, error) {
	c, err := newCanvas(width, height, format)
	if err != nil {
		return nil, err
	}
	if title != "" {
		c.text(title, 16, 28, 14, colorText)
	}
	c.centeredText(msg, height/2, 14, colorMuted)
	return c.bytes()
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderChart draws any go-chart chart type into bytes.
func renderChart(ch renderable, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(provider(format), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
