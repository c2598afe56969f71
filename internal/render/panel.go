package render

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/benchplot/internal/layout"
	"github.com/mwiater/benchplot/internal/metrics"
	"github.com/mwiater/benchplot/internal/records"
)

// PanelSpec configures one single-metric panel.
type PanelSpec struct {
	Metric      metrics.Metric
	Marker      Marker
	ShowSummary bool
}

// LegendEntry is a colored label placed at a fixed pixel offset from the
// panel's top-left corner.
type LegendEntry struct {
	Text      string
	Color     color.Color
	Left, Top float64
}

// Panel is a fully laid out chart region. Building it performs all the
// statistics; drawing it only issues drawing calls.
type Panel struct {
	Title      string
	YMin, YMax float64
	Marks      []Mark
	Summaries  []SummaryMarker
	Legend     []LegendEntry

	// SummaryErrors holds one *metrics.StatsError per application whose
	// summary overlay could not be computed. The rest of the panel is built
	// regardless.
	SummaryErrors []error

	axis *layout.Axis
}

// NewPanel lays out spec.Metric for every application. The Y range runs from
// 0 to the metric's extreme plus 2.5% headroom.
func NewPanel(spec PanelSpec, series []records.ApplicationSeries, extremes records.Sample, axis *layout.Axis) *Panel {
	p := &Panel{
		Title: spec.Metric.Title,
		axis:  axis,
	}
	p.YMin, p.YMax = headroom(spec.Metric.Value(extremes))

	n := len(series)
	for _, s := range series {
		x := layout.Position(s.Index)
		clr := Hue(s.Index, n)
		for _, sample := range s.Samples {
			v := spec.Metric.Value(sample)
			if v <= 0 {
				continue
			}
			p.Marks = append(p.Marks, Mark{
				Application: s.Name,
				Marker:      spec.Marker,
				X:           x,
				Y:           v,
				HalfWidth:   markerHalfWidth(spec.Marker),
				Color:       clr,
			})
		}

		if !spec.ShowSummary {
			continue
		}
		summary, err := metrics.SummarizeSeries(s, spec.Metric)
		if err != nil {
			p.SummaryErrors = append(p.SummaryErrors, err)
			continue
		}
		p.Summaries = append(p.Summaries, SummaryMarker{
			Application: s.Name,
			X:           x,
			HalfWidth:   summaryHalfWidth,
			Summary:     summary,
		})
	}
	return p
}

// Err joins the summary errors, or returns nil.
func (p *Panel) Err() error {
	return errors.Join(p.SummaryErrors...)
}

// Plot builds the gonum plot for the panel. There is no grid: only the axis
// ticks carry meaning.
func (p *Panel) Plot() *plot.Plot {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Title.TextStyle.Font.Size = Pixels(titleFontSize)

	pl.X.Min, pl.X.Max = p.axis.Domain()
	pl.X.Tick.Marker = p.axis
	pl.X.Tick.Length = Pixels(tickLength)
	pl.X.Tick.Label.Font.Size = Pixels(tickFontSize)

	pl.Y.Min, pl.Y.Max = p.YMin, p.YMax
	pl.Y.Label.Text = p.Title
	pl.Y.Tick.Length = Pixels(tickLength)

	pl.Add(markLayer(p.Marks))
	if len(p.Summaries) > 0 {
		pl.Add(summaryLayer(p.Summaries))
	}
	return pl
}

// DrawLegend draws the legend entries on the panel's canvas.
func (p *Panel) DrawLegend(c draw.Canvas, sty text.Style) {
	sty.XAlign = text.XLeft
	sty.YAlign = text.YTop
	for _, e := range p.Legend {
		s := sty
		s.Color = e.Color
		pt := vg.Point{X: c.Min.X + Pixels(e.Left), Y: c.Max.Y - Pixels(e.Top)}
		c.FillText(s, pt, e.Text)
	}
}

// Draw renders the panel into c.
func (p *Panel) Draw(c draw.Canvas) {
	pl := p.Plot()
	pl.Draw(c)
	p.DrawLegend(c, LegendStyle(pl))
}

// MarkCount returns the number of marks drawn for app.
func (p *Panel) MarkCount(app string) int {
	count := 0
	for _, m := range p.Marks {
		if m.Application == app {
			count++
		}
	}
	return count
}

// LegendStyle derives the legend text style from a panel plot.
func LegendStyle(pl *plot.Plot) text.Style {
	sty := pl.Title.TextStyle
	sty.Font.Size = Pixels(legendFontSize)
	return sty
}

func markerHalfWidth(m Marker) float64 {
	switch m {
	case Bar:
		return barHalfWidth
	case Point:
		return 0
	default:
		return lineHalfWidth
	}
}

// headroom returns the Y range for a panel whose tallest value is extreme.
// An empty metric still gets a valid, non-degenerate range.
func headroom(extreme float64) (float64, float64) {
	if extreme <= 0 {
		return 0, 1
	}
	return 0, extreme * yHeadroom
}
