// Package view renders a projection into the five dashboard charts and the
// data table. Every Dispatch builds a fresh Frame; nothing is carried over
// from a previous one.
package view

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"covid-dashboard/internal/config"
	"covid-dashboard/internal/filter"
	"covid-dashboard/internal/geo"
	"covid-dashboard/internal/projection"

	"github.com/rs/zerolog"
)

var ErrRenderFailure = errors.New("render failure")

type Kind string

const (
	KindMap      Kind = "map"
	KindBar      Kind = "bar"
	KindTimeline Kind = "timeline"
	KindScatter  Kind = "scatter"
	KindPie      Kind = "pie"
)

// Kinds lists the chart views in dashboard order.
var Kinds = []Kind{KindMap, KindBar, KindTimeline, KindScatter, KindPie}

func (k Kind) Known() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// ParseFormat defaults to SVG.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// Element is one mark in a chart: a map dot, a bar, a slice. Detail holds
// the lines shown while the element is hovered.
type Element struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Value  float64  `json:"value"`
	Fill   string   `json:"fill,omitempty"`
	Detail []string `json:"detail"`
}

type View struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Elements    []Element `json:"elements"`
	Misses      int       `json:"misses,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Err         error     `json:"-"`
	Error       string    `json:"error,omitempty"`
	Format      Format    `json:"format"`
	Image       []byte    `json:"-"`
}

// Failed reports whether the view fell back to its placeholder because of
// a render failure.
func (v *View) Failed() bool { return v.Err != nil }

type Frame struct {
	Seq              uint64       `json:"seq"`
	Version          uint64       `json:"version"`
	Filter           filter.State `json:"filter"`
	MetricLabel      string       `json:"metricLabel"`
	UnknownContinent bool         `json:"unknownContinent"`
	Views            []*View      `json:"views"`
	Table            Table        `json:"table"`
	RenderedAt       time.Time    `json:"renderedAt"`
}

func (f *Frame) View(kind Kind) *View {
	for _, v := range f.Views {
		if v.Kind == kind {
			return v
		}
	}
	return nil
}

type Dispatcher struct {
	width  int
	height int
	ref    *geo.Reference
	seq    atomic.Uint64
	logger zerolog.Logger
}

func NewDispatcher(cfg *config.Config, ref *geo.Reference, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{width: cfg.ChartWidth, height: cfg.ChartHeight, ref: ref, logger: logger}
}

// Dispatch renders every view from the same projection.
func (d *Dispatcher) Dispatch(p projection.Projection, format Format) *Frame {
	frame := &Frame{
		Seq:              d.seq.Add(1),
		Version:          p.Version,
		Filter:           p.Filter,
		MetricLabel:      p.Metric.Label(),
		UnknownContinent: p.UnknownContinent,
		Views:            make([]*View, 0, len(Kinds)),
		Table:            BuildTable(p.Table),
		RenderedAt:       time.Now(),
	}
	for _, kind := range Kinds {
		v := d.Render(kind, p, format)
		if v.Err != nil {
			d.logger.Warn().Err(v.Err).Str("view", string(kind)).Uint64("seq", frame.Seq).Msg("view rendered as placeholder")
		}
		frame.Views = append(frame.Views, v)
	}
	d.logger.Debug().
		Uint64("seq", frame.Seq).
		Uint64("version", frame.Version).
		Str("metric", string(p.Metric)).
		Str("continent", p.Filter.Continent).
		Int("table_rows", len(frame.Table.Rows)).
		Msg("frame dispatched")
	return frame
}

// Render draws a single view. A failure never escapes: the view carries
// its placeholder image and the error.
func (d *Dispatcher) Render(kind Kind, p projection.Projection, format Format) *View {
	var v *View
	switch kind {
	case KindMap:
		v = d.renderMap(p, format)
	case KindBar:
		v = d.renderBar(p, format)
	case KindTimeline:
		v = d.renderTimeline(p, format)
	case KindScatter:
		v = d.renderScatter(p, format)
	case KindPie:
		v = d.renderPie(p, format)
	default:
		v = &View{Kind: kind, Title: string(kind)}
		d.fail(v, format, "Unknown view", fmt.Errorf("unknown view %q", kind))
	}
	v.Format = format
	return v
}

// fail swaps the view's output for a placeholder image carrying msg.
func (d *Dispatcher) fail(v *View, format Format, msg string, cause error) {
	v.Err = fmt.Errorf("%s: %w: %v", v.Kind, ErrRenderFailure, cause)
	v.Error = v.Err.Error()
	d.placeholder(v, format, msg)
}

func (d *Dispatcher) placeholder(v *View, format Format, msg string) {
	v.Placeholder = msg
	v.Elements = nil
	img, err := renderPlaceholder(d.width, d.height, format, v.Title, msg)
	if err != nil {
		d.logger.Error().Err(err).Str("view", string(v.Kind)).Msg("placeholder render failed")
		return
	}
	v.Image = img
}
