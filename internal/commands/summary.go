package benchplot

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/benchplot/internal/report"
)

// newSummaryCmd implements 'summary', which prints the five-number summary
// of every application and metric without drawing the image.
func newSummaryCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [report_dir]",
		Short: "Print the five-number summaries of a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := s.loadSeries()
			if err != nil {
				return err
			}
			return report.SummaryTable(cmd.OutOrStdout(), series)
		},
	}
}
