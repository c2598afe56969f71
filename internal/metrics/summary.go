package metrics

import (
	"fmt"
	"sort"

	"github.com/mwiater/benchplot/internal/records"
)

// Summary is the five-number summary of one metric for one application.
type Summary struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// StatsError reports that an application has no positive values for a metric.
type StatsError struct {
	Application string
	Metric      string
}

func (e *StatsError) Error() string {
	if e.Application == "" {
		return fmt.Sprintf("no positive %s values to summarize", e.Metric)
	}
	return fmt.Sprintf("no positive %s values to summarize for %s", e.Metric, e.Application)
}

// Summarize computes the five-number summary of metric over samples.
// Values <= 0 mean "not measured" and are skipped. Quartiles are read at
// len/4, len/2 and 3*len/4 of the sorted values, without interpolation.
func Summarize(samples []records.Sample, metric Metric) (Summary, error) {
	values := positiveValues(samples, metric)
	if len(values) == 0 {
		return Summary{}, &StatsError{Metric: metric.Key}
	}
	sort.Float64s(values)

	n := len(values)
	return Summary{
		Min:    values[0],
		Q1:     values[n/4],
		Median: values[n/2],
		Q3:     values[n*3/4],
		Max:    values[n-1],
	}, nil
}

// SummarizeSeries is Summarize for one application series; errors carry the
// application name.
func SummarizeSeries(series records.ApplicationSeries, metric Metric) (Summary, error) {
	summary, err := Summarize(series.Samples, metric)
	if err != nil {
		return Summary{}, &StatsError{Application: series.Name, Metric: metric.Key}
	}
	return summary, nil
}

// PositiveCount returns how many samples carry a measured value for metric.
func PositiveCount(samples []records.Sample, metric Metric) int {
	count := 0
	for _, s := range samples {
		if metric.Value(s) > 0 {
			count++
		}
	}
	return count
}

func positiveValues(samples []records.Sample, metric Metric) []float64 {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v := metric.Value(s); v > 0 {
			values = append(values, v)
		}
	}
	return values
}
