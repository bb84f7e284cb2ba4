package aggregators

import (
	"math"
	"sort"

	"access-summary/internal/models"
)

const latencyPrecision = 4

// Percentile returns the value at ratio (0..1) of an ascending slice, interpolating
// linearly between the two nearest order statistics. It reports false for an empty slice.
func Percentile(sorted []float64, ratio float64) (float64, bool) {
	switch len(sorted) {
	case 0:
		return 0, false
	case 1:
		return sorted[0], true
	}

	index := float64(len(sorted)-1) * ratio
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower], true
	}
	return sorted[lower] + (sorted[upper]-sorted[lower])*(index-float64(lower)), true
}

// ComputeLatencyStats summarizes latency samples. The input is not modified.
func ComputeLatencyStats(samples []float64) models.LatencyStats {
	stats := models.LatencyStats{Count: len(samples)}
	if len(samples) == 0 {
		return stats
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	stats.Avg = roundedPtr(sum / float64(len(sorted)))
	stats.Min = roundedPtr(sorted[0])
	stats.Max = roundedPtr(sorted[len(sorted)-1])
	stats.P50 = percentilePtr(sorted, 0.50)
	stats.P95 = percentilePtr(sorted, 0.95)
	stats.P99 = percentilePtr(sorted, 0.99)
	return stats
}

func percentilePtr(sorted []float64, ratio float64) *float64 {
	v, ok := Percentile(sorted, ratio)
	if !ok {
		return nil
	}
	return roundedPtr(v)
}

func roundedPtr(v float64) *float64 {
	r := models.RoundTo(v, latencyPrecision)
	return &r
}
