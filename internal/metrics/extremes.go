package metrics

import (
	"math"

	"github.com/mwiater/benchplot/internal/records"
)

// ScanExtremes returns, for every metric, the largest value seen across all
// samples of all applications. Nothing is filtered: a metric no application
// reported stays at 0. NaN never replaces a value.
func ScanExtremes(series []records.ApplicationSeries) records.Sample {
	var ext records.Sample
	for _, s := range series {
		for _, sample := range s.Samples {
			ext.InstallTime = larger(ext.InstallTime, sample.InstallTime)
			ext.BuildTime = larger(ext.BuildTime, sample.BuildTime)
			ext.DepsWithDuplicates = larger(ext.DepsWithDuplicates, sample.DepsWithDuplicates)
			ext.DepsWithoutDuplicates = larger(ext.DepsWithoutDuplicates, sample.DepsWithoutDuplicates)
			ext.BuildSize = larger(ext.BuildSize, sample.BuildSize)
			ext.Chromium = larger(ext.Chromium, sample.Chromium)
			ext.Firefox = larger(ext.Firefox, sample.Firefox)
			ext.Webkit = larger(ext.Webkit, sample.Webkit)
		}
	}
	return ext
}

// MinPositive returns the smallest strictly positive value of any of the
// given metrics across all samples, and false when there is none.
func MinPositive(series []records.ApplicationSeries, ms ...Metric) (float64, bool) {
	minVal := math.Inf(1)
	for _, s := range series {
		for _, sample := range s.Samples {
			for _, m := range ms {
				if v := m.Value(sample); v > 0 && v < minVal {
					minVal = v
				}
			}
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, false
	}
	return minVal, true
}

// MaxOf returns the largest extreme among the given metrics.
func MaxOf(ext records.Sample, ms ...Metric) float64 {
	var maxVal float64
	for _, m := range ms {
		maxVal = larger(maxVal, m.Value(ext))
	}
	return maxVal
}

// larger keeps cur unless v compares strictly greater, so NaN is ignored.
func larger(cur, v float64) float64 {
	if v > cur {
		return v
	}
	return cur
}
