package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one metric.
type Summary struct {
	Count  int     `csv:"count"`
	Mean   float64 `csv:"mean"`
	StdDev float64 `csv:"stddev"`
	Min    float64 `csv:"min"`
	Max    float64 `csv:"max"`
	P50    float64 `csv:"p50"`
	P95    float64 `csv:"p95"`
}

// Summarize computes mean, sample standard deviation, extremes and empirical
// quantiles of xs. xs is not modified. An empty input yields a zero Summary.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	s := Summary{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}
