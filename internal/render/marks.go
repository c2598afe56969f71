package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/benchplot/internal/metrics"
)

// Mark is one drawn sample.
type Mark struct {
	Application string
	Marker      Marker
	X, Y        float64
	// HalfWidth is in axis units; for Point it is unused.
	HalfWidth float64
	Color     color.Color
}

// markLayer draws marks in data coordinates. It does not implement
// plot.DataRanger, so it never changes the axis ranges.
type markLayer []Mark

func (ms markLayer) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, m := range ms {
		switch m.Marker {
		case Bar:
			x0, x1 := trX(m.X-m.HalfWidth), trX(m.X+m.HalfWidth)
			y0, y1 := trY(0), trY(m.Y)
			c.FillPolygon(m.Color, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
		case Point:
			c.DrawGlyph(draw.GlyphStyle{
				Color:  m.Color,
				Radius: Pixels(pointRadius),
				Shape:  draw.CircleGlyph{},
			}, vg.Point{X: trX(m.X), Y: trY(m.Y)})
		default:
			sty := draw.LineStyle{Color: m.Color, Width: Pixels(1)}
			c.StrokeLine2(sty, trX(m.X-m.HalfWidth), trY(m.Y), trX(m.X+m.HalfWidth), trY(m.Y))
		}
	}
}

// SummaryMarker is a candlestick: a filled box from Q1 to Q3, a wick from
// Min to Max and whisker caps at Min, Median and Max.
type SummaryMarker struct {
	Application string
	X           float64
	HalfWidth   float64
	Summary     metrics.Summary
}

// WhiskerHalfWidth is wider than the box so the median cap stays visible
// when it coincides with a box edge.
func (s SummaryMarker) WhiskerHalfWidth() float64 {
	return math.Ceil(s.HalfWidth * whiskerFactor)
}

// summaryLayer draws candlesticks. Values outside the axis range are drawn
// as is.
type summaryLayer []SummaryMarker

func (ss summaryLayer) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	line := draw.LineStyle{Color: SummaryColor, Width: Pixels(1)}
	for _, s := range ss {
		x := trX(s.X)
		c.StrokeLine2(line, x, trY(s.Summary.Min), x, trY(s.Summary.Max))

		x0, x1 := trX(s.X-s.HalfWidth), trX(s.X+s.HalfWidth)
		q1, q3 := trY(s.Summary.Q1), trY(s.Summary.Q3)
		c.FillPolygon(SummaryColor, []vg.Point{{X: x0, Y: q1}, {X: x1, Y: q1}, {X: x1, Y: q3}, {X: x0, Y: q3}})

		w := s.WhiskerHalfWidth()
		wx0, wx1 := trX(s.X-w), trX(s.X+w)
		for _, y := range []float64{s.Summary.Min, s.Summary.Median, s.Summary.Max} {
			c.StrokeLine2(line, wx0, trY(y), wx1, trY(y))
		}
	}
}
