package summaries

import (
	"access-summary/internal/shared/metrics"
)

var (
	// metricSummaryGeneratedTotal counts Generate calls by error code ("" on success).
	metricSummaryGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSummary,
			Name:      "generated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricSummaryGenerationSeconds = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSummary,
			Name:      "generation_seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)
)
