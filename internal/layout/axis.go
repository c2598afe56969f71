// Package layout maps the sorted application list onto the shared X axis of
// every report panel.
package layout

import (
	"gonum.org/v1/plot"
)

// Spacing is the distance in axis units between two neighbouring
// applications. Sub-elements (bars, offset strips, whisker caps) are placed
// within this room.
const Spacing = 100

// Position returns the axis coordinate of the application with the given
// 1-based ordinal index.
func Position(index int) float64 {
	return float64(index * Spacing)
}

// Axis is the categorical X axis shared by all panels.
type Axis struct {
	names  []string
	labels map[float64]string
}

// NewAxis builds the axis for names, which must already be in ordinal order
// (names[0] has index 1).
func NewAxis(names []string) *Axis {
	labels := make(map[float64]string, len(names))
	for i, name := range names {
		labels[Position(i+1)] = name
	}
	return &Axis{
		names:  append([]string(nil), names...),
		labels: labels,
	}
}

// Len returns the number of applications on the axis.
func (a *Axis) Len() int { return len(a.names) }

// Domain returns the axis range. One extra slot of Spacing is kept after the
// last application so its marks are not clipped at the panel edge.
func (a *Axis) Domain() (min, max float64) {
	return 0, Position(len(a.names) + 1)
}

// Label returns the application name at position, or "" when no application
// sits exactly there.
func (a *Axis) Label(position float64) string {
	return a.labels[position]
}

// Ticks implements plot.Ticker. The tick set depends only on the application
// list, so min and max are ignored. It returns one labelled tick per
// application plus an unlabelled tick at the domain end, which keeps the
// axis layout stable. An equivalent layout keys the axis on 0..N*Spacing
// with the unlabelled tick leading at 0; this one trails instead.
func (a *Axis) Ticks(_, _ float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(a.names)+1)
	for i := range a.names {
		pos := Position(i + 1)
		ticks = append(ticks, plot.Tick{Value: pos, Label: a.Label(pos)})
	}
	_, end := a.Domain()
	ticks = append(ticks, plot.Tick{Value: end, Label: a.Label(end)})
	return ticks
}

var _ plot.Ticker = (*Axis)(nil)
