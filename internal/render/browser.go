package render

import (
	"image/color"

	"github.com/mwiater/benchplot/internal/layout"
	"github.com/mwiater/benchplot/internal/metrics"
	"github.com/mwiater/benchplot/internal/records"
)

// BrowserTitle is the title of the in-browser execution panel.
const BrowserTitle = "In-browser execution (in ms)"

const (
	browserTickHalfWidth    = 5
	browserSummaryHalfWidth = 5
	browserMinHeadroom      = 0.975
	browserMaxHeadroom      = 1.05
)

// Engine is one browser series on the comparison panel.
type Engine struct {
	Metric metrics.Metric
	Offset float64
	Color  color.Color
}

// Engines returns the browser series in drawing order.
func Engines() []Engine {
	return []Engine{
		{Metric: metrics.Chromium, Offset: -23, Color: hsl(0, 1, 0.5)},
		{Metric: metrics.Webkit, Offset: 0, Color: hsl(1.0/3, 1, 0.5)},
		{Metric: metrics.Firefox, Offset: 23, Color: hsl(2.0/3, 1, 0.75)},
	}
}

// NewBrowserPanel lays out the three-engine comparison. width and height are
// the whole image's pixel dimensions and only position the legend, which is
// offset from the panel's top-left corner.
func NewBrowserPanel(series []records.ApplicationSeries, axis *layout.Axis, width, height int) *Panel {
	engines := Engines()
	browserMetrics := make([]metrics.Metric, len(engines))
	for i, e := range engines {
		browserMetrics[i] = e.Metric
	}

	p := &Panel{
		Title: BrowserTitle,
		axis:  axis,
	}
	p.YMin, p.YMax = browserRange(series, browserMetrics)

	for _, s := range series {
		base := layout.Position(s.Index)
		for _, e := range engines {
			x := base + e.Offset
			for _, sample := range s.Samples {
				v := e.Metric.Value(sample)
				if v <= 0 {
					continue
				}
				p.Marks = append(p.Marks, Mark{
					Application: s.Name,
					Marker:      HorizontalLine,
					X:           x,
					Y:           v,
					HalfWidth:   browserTickHalfWidth,
					Color:       e.Color,
				})
			}

			summary, err := metrics.SummarizeSeries(s, e.Metric)
			if err != nil {
				p.SummaryErrors = append(p.SummaryErrors, err)
				continue
			}
			p.Summaries = append(p.Summaries, SummaryMarker{
				Application: s.Name,
				X:           x,
				HalfWidth:   browserSummaryHalfWidth,
				Summary:     summary,
			})
		}
	}

	p.Legend = browserLegend(engines, width, height)
	return p
}

// browserRange spans the smallest positive and largest value of all engines.
func browserRange(series []records.ApplicationSeries, ms []metrics.Metric) (float64, float64) {
	minVal, ok := metrics.MinPositive(series, ms...)
	if !ok {
		return 0, 1
	}
	maxVal := metrics.MaxOf(metrics.ScanExtremes(series), ms...)
	return minVal * browserMinHeadroom, maxVal * browserMaxHeadroom
}

func browserLegend(engines []Engine, width, height int) []LegendEntry {
	left := float64(width / 5)
	top := float64(height / 7)
	legend := make([]LegendEntry, len(engines))
	for i, e := range engines {
		legend[i] = LegendEntry{
			Text:  "― " + e.Metric.Title,
			Color: e.Color,
			Left:  left * float64(i+1),
			Top:   top,
		}
	}
	return legend
}
