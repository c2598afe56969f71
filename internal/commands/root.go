// internal/commands/root.go
package benchplot

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/records"
	"github.com/mwiater/benchplot/internal/report"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// skipReportCheck marks commands that run without a report directory.
const skipReportCheck = "skip-report-check"

// session carries the merged settings of one command invocation.
type session struct {
	v       *viper.Viper
	cfgFile string
	cfg     appconfig.Config
}

// newRootCmd builds the command tree with its own viper instance so that
// every invocation starts from a clean configuration.
func newRootCmd() *cobra.Command {
	s := &session{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "benchplot [report_dir]",
		Short: "benchplot renders framework benchmark tables into a stacked PNG report",
		Long: `benchplot reads the per-application benchmark tables of one report directory,
computes five-number summaries and writes a six-panel comparison image.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceErrors:     true,
		SilenceUsage:      true,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate),
		PersistentPreRunE: s.load,
		RunE:              s.render,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&s.cfgFile, "config", "c", "", "optional JSON config file (e.g., config/benchplot.json)")
	flags.String("base-dir", ".", "directory holding the apps and output directories")
	flags.String("apps-dir", appconfig.DefaultAppsDir, "directory listing the benchmarked applications")
	flags.String("output-root", appconfig.DefaultOutputRoot, "directory holding report tables and images")
	flags.Int("width", appconfig.DefaultWidth, "image width in pixels")
	flags.Int("height", appconfig.DefaultHeight, "image height in pixels")
	flags.Bool("skip-empty-summaries", false, "skip summaries without positive samples instead of failing")
	flags.Bool("legacy-file-name", false, "write graph.png instead of graph_<report_dir>.png")
	flags.String("log-file", "", "path to the log file")
	flags.Bool("debug", false, "enable debug logging")

	for key, flag := range map[string]string{
		"base_dir":             "base-dir",
		"apps_dir":             "apps-dir",
		"output_root":          "output-root",
		"width":                "width",
		"height":               "height",
		"skip_empty_summaries": "skip-empty-summaries",
		"legacy_file_name":     "legacy-file-name",
		"log_file":             "log-file",
		"debug":                "debug",
	} {
		_ = s.v.BindPFlag(key, flags.Lookup(flag))
	}
	_ = s.v.BindEnv("report_dir", "OUTPUT_DIR")

	rootCmd.AddCommand(newSummaryCmd(s))
	rootCmd.AddCommand(newShowCmd(s))
	return rootCmd
}

// load merges config file, environment and flags into s.cfg.
func (s *session) load(cmd *cobra.Command, args []string) error {
	if s.cfgFile != "" {
		if err := appconfig.ValidateFile(s.cfgFile); err != nil {
			return err
		}
		s.v.SetConfigFile(s.cfgFile)
		if err := s.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	var cfg appconfig.Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if len(args) > 0 {
		cfg.ReportDir = args[0]
	}
	cfg.ConfigPath = s.cfgFile

	if cmd.Annotations[skipReportCheck] == "" {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	s.cfg = cfg

	if err := logging.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetDebug(cfg.Debug)
	return nil
}

func (s *session) loadSeries() ([]records.ApplicationSeries, error) {
	src := records.Source{AppsDir: s.cfg.AppsPath(), TableDir: s.cfg.TableDir()}
	series, err := records.Load(src)
	if err != nil {
		return nil, err
	}
	logging.LogStage("load", map[string]any{
		"applications": len(series),
		"report_dir":   s.cfg.ReportDir,
		"tables":       src.TableDir,
	})
	return series, nil
}

func (s *session) render(cmd *cobra.Command, args []string) error {
	series, err := s.loadSeries()
	if err != nil {
		return err
	}
	logging.DumpDebug("summaries", report.Summaries(series))

	path := s.cfg.ImagePath()
	if err := report.Write(path, series, reportOptions(s.cfg)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

func reportOptions(cfg appconfig.Config) report.Options {
	return report.Options{
		Width:              cfg.ImageWidth(),
		Height:             cfg.ImageHeight(),
		SkipEmptySummaries: cfg.SkipEmptySummaries,
		Markers:            cfg.Markers,
	}
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	_ = logging.Close()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	red := color.New(color.FgRed)
	if errors.Is(err, appconfig.ErrMissingReportDir) {
		red.Fprintln(os.Stderr, "Usage error:", err)
		return
	}
	red.Fprintln(os.Stderr, "Error:", err)
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
