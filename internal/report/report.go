// internal/report/report.go
// Package report stacks the benchmark panels into one PNG image.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mwiater/benchplot/internal/layout"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/metrics"
	"github.com/mwiater/benchplot/internal/records"
	"github.com/mwiater/benchplot/internal/render"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 1800
)

// Options controls the composed image.
type Options struct {
	Width  int
	Height int
	// SkipEmptySummaries drops summary overlays that cannot be computed and
	// keeps going. When false, the first such failure aborts the report.
	SkipEmptySummaries bool
	// Markers overrides the marker style per metric key ("line", "bar",
	// "point").
	Markers map[string]string
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

type panelPlan struct {
	metric  metrics.Metric
	marker  render.Marker
	summary bool
}

// Layout is the fixed top-to-bottom panel order, excluding the browser
// comparison, which always comes last.
var Layout = []panelPlan{
	{metric: metrics.InstallTime, marker: render.HorizontalLine, summary: true},
	{metric: metrics.BuildTime, marker: render.HorizontalLine, summary: true},
	{metric: metrics.BuildSize, marker: render.Bar},
	{metric: metrics.DepsWithDuplicates, marker: render.Bar},
	{metric: metrics.DepsWithoutDuplicates, marker: render.Bar},
}

// PanelCount is the number of stacked panels in the image.
var PanelCount = len(Layout) + 1

// BuildPanels lays out every panel. Statistics failures either abort (the
// default) or are logged and their overlays dropped.
func BuildPanels(series []records.ApplicationSeries, opts Options) ([]*render.Panel, error) {
	if len(series) == 0 {
		return nil, errors.New("no application series to plot")
	}
	markers, err := resolveMarkers(opts.Markers)
	if err != nil {
		return nil, err
	}

	width, height := opts.size()
	axis := layout.NewAxis(records.Names(series))
	extremes := metrics.ScanExtremes(series)

	panels := make([]*render.Panel, 0, PanelCount)
	for _, plan := range Layout {
		marker := plan.marker
		if m, ok := markers[plan.metric.Key]; ok {
			marker = m
		}
		spec := render.PanelSpec{Metric: plan.metric, Marker: marker, ShowSummary: plan.summary}
		panels = append(panels, render.NewPanel(spec, series, extremes, axis))
	}
	panels = append(panels, render.NewBrowserPanel(series, axis, width, height))

	for _, p := range panels {
		logging.LogStage("PANEL", map[string]any{
			"title":     p.Title,
			"marks":     len(p.Marks),
			"summaries": len(p.Summaries),
			"y_max":     p.YMax,
		})
		if err := p.Err(); err != nil {
			if !opts.SkipEmptySummaries {
				return nil, fmt.Errorf("panel %q: %w", p.Title, err)
			}
			for _, e := range p.SummaryErrors {
				logging.LogWarn("skipping summary overlay: %v", e)
			}
		}
	}
	return panels, nil
}

// Compose builds all panels and writes the stacked PNG to w.
func Compose(w io.Writer, series []records.ApplicationSeries, opts Options) error {
	panels, err := BuildPanels(series, opts)
	if err != nil {
		return err
	}
	return Draw(w, panels, opts)
}

// Draw stacks panels vertically on one white canvas and encodes it as PNG.
func Draw(w io.Writer, panels []*render.Panel, opts Options) error {
	width, height := opts.size()
	img := vgimg.NewWith(
		vgimg.UseWH(render.Pixels(float64(width)), render.Pixels(float64(height))),
		vgimg.UseDPI(render.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	plots := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		plots[i] = []*plot.Plot{p.Plot()}
	}
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    render.Pixels(10),
		PadRight:  render.Pixels(15),
		PadBottom: render.Pixels(15),
		PadLeft:   render.Pixels(15),
		PadY:      render.Pixels(25),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i, p := range panels {
		pl := plots[i][0]
		pl.Draw(canvases[i][0])
		p.DrawLegend(canvases[i][0], render.LegendStyle(pl))
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Write builds the panels and writes the image to path, creating the parent
// directory. The file is only created once every panel has been laid out.
func Write(path string, series []records.ApplicationSeries, opts Options) (err error) {
	panels, err := BuildPanels(series, opts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create image %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("unable to write image %s: %w", path, cerr)
		}
	}()

	if err := Draw(file, panels, opts); err != nil {
		return fmt.Errorf("unable to write image %s: %w", path, err)
	}
	logging.LogEvent("[REPORT] image written to %s", path)
	return nil
}

func resolveMarkers(raw map[string]string) (map[string]render.Marker, error) {
	markers := make(map[string]render.Marker, len(raw))
	for key, value := range raw {
		m, err := metrics.Lookup(key)
		if err != nil {
			return nil, fmt.Errorf("marker override: %w", err)
		}
		if metrics.IsBrowser(m) {
			return nil, fmt.Errorf("marker override: %s is drawn on the browser panel and has a fixed style", key)
		}
		marker, err := render.ParseMarker(value)
		if err != nil {
			return nil, fmt.Errorf("marker override for %s: %w", key, err)
		}
		markers[key] = marker
	}
	return markers, nil
}
