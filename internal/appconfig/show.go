package appconfig

import (
	"fmt"
	"io"
	"sort"
)

// ShowConfig prints the resolved configuration summary.
func ShowConfig(out io.Writer, cfg Config) {
	if cfg.ConfigPath == "" {
		fmt.Fprintln(out, "No config file loaded (using flags, environment and defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigPath)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Report dir:      %s\n", cfg.ReportDir)
	fmt.Fprintf(out, "  Apps dir:        %s\n", cfg.AppsPath())
	fmt.Fprintf(out, "  Tables dir:      %s\n", cfg.TableDir())
	fmt.Fprintf(out, "  Image:           %s\n", cfg.ImagePath())
	fmt.Fprintf(out, "  Image size:      %dx%d\n", cfg.ImageWidth(), cfg.ImageHeight())
	fmt.Fprintf(out, "  Skip empty summaries: %v\n", cfg.SkipEmptySummaries)
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	if cfg.LogFile != "" {
		fmt.Fprintf(out, "  Log file:        %s\n", cfg.LogFile)
	}
	if len(cfg.Markers) > 0 {
		keys := make([]string, 0, len(cfg.Markers))
		for k := range cfg.Markers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "  Markers:")
		for _, k := range keys {
			fmt.Fprintf(out, "    %s: %s\n", k, cfg.Markers[k])
		}
	}
}
