package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatNumber renders v with en-US digit grouping and at most three
// fraction digits. Zero, NaN and infinities print as "0".
func FormatNumber(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	v = math.Round(v*1000) / 1000
	whole, frac := math.Modf(v)
	out := printer.Sprintf("%d", int64(whole))
	if whole == 0 && v < 0 {
		out = "-0"
	}
	if frac == 0 {
		return out
	}
	f := strconv.FormatFloat(math.Abs(frac), 'f', 3, 64)
	return out + "." + strings.TrimRight(strings.TrimPrefix(f, "0."), "0")
}

func FormatCount(n int64) string {
	return FormatNumber(float64(n))
}

// FormatPercent renders part/total with the given precision, "0%" when the
// total is not positive.
func FormatPercent(part, total float64, precision int) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.FormatFloat(part/total*100, 'f', precision, 64) + "%"
}

// compact is used on axis ticks and legends: 1.2K, 34M, 5B.
func compact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimFloat(v/1e9) + "B"
	case abs >= 1e6:
		return trimFloat(v/1e6) + "M"
	case abs >= 1e3:
		return trimFloat(v/1e3) + "K"
	}
	return trimFloat(v)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

func hexColor(c drawing.Color) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

var (
	colorBackground = drawing.ColorFromHex("141414")
	colorText       = drawing.ColorFromHex("e5e5e5")
	colorMuted      = drawing.ColorFromHex("808080")
	colorNoData     = drawing.ColorFromHex("2f2f2f")
	colorAccent     = drawing.ColorFromHex("e50914")
)

// ColorNoData is the fill of map countries without a positive value.
const ColorNoData = "#2f2f2f"

// redStops is a sequential light-to-dark red ramp.
var redStops = []drawing.Color{
	drawing.ColorFromHex("fff5f0"),
	drawing.ColorFromHex("fee0d2"),
	drawing.ColorFromHex("fcbba1"),
	drawing.ColorFromHex("fc9272"),
	drawing.ColorFromHex("fb6a4a"),
	drawing.ColorFromHex("ef3b2c"),
	drawing.ColorFromHex("cb181d"),
	drawing.ColorFromHex("a50f15"),
	drawing.ColorFromHex("67000d"),
}

// reds maps t in [0,1] onto the ramp; values outside are clamped.
func reds(t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 {
		return redStops[0]
	}
	if t >= 1 {
		return redStops[len(redStops)-1]
	}
	pos := t * float64(len(redStops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := redStops[i], redStops[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac)) }
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// sequential is a linear scale over [0, max] onto the red ramp.
type sequential struct {
	max float64
}

func (s sequential) color(v float64) drawing.Color {
	if s.max <= 0 {
		return redStops[0]
	}
	return reds(v / s.max)
}

var pieColors = []drawing.Color{
	drawing.ColorFromHex("e50914"),
	drawing.ColorFromHex("ff6b6b"),
	drawing.ColorFromHex("ff9999"),
	drawing.ColorFromHex("ffcccc"),
	drawing.ColorFromHex("ffeaea"),
	drawing.ColorFromHex("fff5f5"),
}
