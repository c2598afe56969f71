// Package render turns application series into report panels: per-sample
// marks, candlestick summaries and axis decoration, drawn with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/vg"
)

// DPI is the raster resolution used to convert pixel sizes to vg lengths.
const DPI = 96

// Pixels converts a pixel count to a vg length at DPI.
func Pixels(n float64) vg.Length {
	return vg.Length(n) * vg.Inch / DPI
}

// Marker selects how a panel draws individual samples.
type Marker int

const (
	HorizontalLine Marker = iota
	Bar
	Point
)

func (m Marker) String() string {
	switch m {
	case HorizontalLine:
		return "line"
	case Bar:
		return "bar"
	case Point:
		return "point"
	default:
		return fmt.Sprintf("Marker(%d)", int(m))
	}
}

// ParseMarker parses "line", "bar" or "point".
func ParseMarker(s string) (Marker, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "horizontal_line", "tick":
		return HorizontalLine, nil
	case "bar":
		return Bar, nil
	case "point", "dot":
		return Point, nil
	}
	return 0, fmt.Errorf("unknown marker style %q", s)
}

const (
	lineHalfWidth    = 30
	barHalfWidth     = 20
	pointRadius      = 3
	summaryHalfWidth = 7
	whiskerFactor    = 1.5
	yHeadroom        = 1.025
	tickLength       = 5
	titleFontSize    = 20
	tickFontSize     = 12
	legendFontSize   = 20
)

// SummaryColor is used for every candlestick so it reads as an annotation
// layer rather than another series.
var SummaryColor color.Color = color.Black

// Hue returns the fill color of the application with ordinal index among n
// applications: hue index/n of the HSL wheel at full saturation and half
// lightness. It depends only on the sort position.
func Hue(index, n int) color.Color {
	if n <= 0 {
		n = 1
	}
	return hsl(float64(index)/float64(n), 1.0, 0.5)
}

// hsl takes the hue as a fraction of the full circle.
func hsl(h, s, l float64) color.Color {
	c := colorful.Hsl(h*360, s, l).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
