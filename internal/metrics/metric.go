// internal/metrics/metric.go
// Package metrics describes the benchmark metrics and computes the per
// application summaries and cross-application extremes used for plotting.
package metrics

import (
	"fmt"

	"github.com/mwiater/benchplot/internal/records"
)

// Metric names one numeric field of a sample.
type Metric struct {
	Key   string
	Title string
	Value func(records.Sample) float64
}

var (
	InstallTime = Metric{
		Key:   "install_time",
		Title: "Install time (in ms)",
		Value: func(s records.Sample) float64 { return s.InstallTime },
	}
	BuildTime = Metric{
		Key:   "build_time",
		Title: "Build time (in ms)",
		Value: func(s records.Sample) float64 { return s.BuildTime },
	}
	DepsWithDuplicates = Metric{
		Key:   "deps_with_duplicates",
		Title: "Deps with duplicates",
		Value: func(s records.Sample) float64 { return s.DepsWithDuplicates },
	}
	DepsWithoutDuplicates = Metric{
		Key:   "deps_without_duplicates",
		Title: "Deps without duplicates",
		Value: func(s records.Sample) float64 { return s.DepsWithoutDuplicates },
	}
	BuildSize = Metric{
		Key:   "build_size",
		Title: "Build size (in KB)",
		Value: func(s records.Sample) float64 { return s.BuildSize },
	}
	Chromium = Metric{
		Key:   "chromium",
		Title: "Chromium",
		Value: func(s records.Sample) float64 { return s.Chromium },
	}
	Webkit = Metric{
		Key:   "webkit",
		Title: "Webkit",
		Value: func(s records.Sample) float64 { return s.Webkit },
	}
	Firefox = Metric{
		Key:   "firefox",
		Title: "Firefox",
		Value: func(s records.Sample) float64 { return s.Firefox },
	}
)

// All lists every metric in report order.
var All = []Metric{
	InstallTime,
	BuildTime,
	BuildSize,
	DepsWithDuplicates,
	DepsWithoutDuplicates,
	Chromium,
	Webkit,
	Firefox,
}

// Browsers lists the in-browser execution metrics.
var Browsers = []Metric{Chromium, Webkit, Firefox}

// Lookup returns the metric registered under key.
func Lookup(key string) (Metric, error) {
	for _, m := range All {
		if m.Key == key {
			return m, nil
		}
	}
	return Metric{}, fmt.Errorf("unknown metric %q", key)
}

// IsBrowser reports whether m is one of the in-browser execution metrics.
func IsBrowser(m Metric) bool {
	for _, b := range Browsers {
		if b.Key == m.Key {
			return true
		}
	}
	return false
}
