package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/benchplot/internal/metrics"
	"github.com/mwiater/benchplot/internal/records"
)

// SummaryRow is the five-number summary of one (application, metric) pair.
type SummaryRow struct {
	Application string
	Metric      string
	Summary     metrics.Summary
	Err         error
}

// Summaries computes a row for every application and every metric, in
// application then report order.
func Summaries(series []records.ApplicationSeries) []SummaryRow {
	rows := make([]SummaryRow, 0, len(series)*len(metrics.All))
	for _, s := range series {
		for _, m := range metrics.All {
			summary, err := metrics.SummarizeSeries(s, m)
			rows = append(rows, SummaryRow{
				Application: s.Name,
				Metric:      m.Key,
				Summary:     summary,
				Err:         err,
			})
		}
	}
	return rows
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// SummaryTable writes the summaries as a terminal table. Pairs without
// positive values show n/a.
func SummaryTable(w io.Writer, series []records.ApplicationSeries) error {
	rows := Summaries(series)
	cells := make([][]string, 0, len(rows))
	missing := make(map[int]bool)
	for i, r := range rows {
		if r.Err != nil {
			missing[i] = true
			cells = append(cells, []string{r.Application, r.Metric, "n/a", "n/a", "n/a", "n/a", "n/a"})
			continue
		}
		cells = append(cells, []string{
			r.Application,
			r.Metric,
			formatValue(r.Summary.Min),
			formatValue(r.Summary.Q1),
			formatValue(r.Summary.Median),
			formatValue(r.Summary.Q3),
			formatValue(r.Summary.Max),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Application", "Metric", "Min", "Q1", "Median", "Q3", "Max").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case missing[row]:
				return missStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
