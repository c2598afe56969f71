package benchplot

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/benchplot/internal/appconfig"
)

func newShowCmd(s *session) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show resolved settings",
	}

	// showConfigCmd implements 'show config', which displays the merged
	// settings after the config file, environment and flags are applied.
	showConfigCmd := &cobra.Command{
		Use:         "config [report_dir]",
		Short:       "Show config settings",
		Long:        `Show config settings ensuring that the JSON config is loaded properly and overridden by flags and OUTPUT_DIR accordingly.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipReportCheck: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			appconfig.ShowConfig(cmd.OutOrStdout(), s.cfg)
		},
	}

	showCmd.AddCommand(showConfigCmd)
	return showCmd
}
