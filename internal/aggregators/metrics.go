package aggregators

import (
	"access-summary/internal/shared/metrics"
)

const (
	outcomeAccepted   = "accepted"
	outcomeParseError = "parse_error"
	outcomeRejected   = "rejected"
	outcomeBlank      = "blank"
)

var (
	// metricLinesTotal counts raw log lines by outcome:
	//   - accepted: parsed and inside the target day
	//   - parse_error: not a JSON object, reported as parse_errors in the summary
	//   - rejected: no usable logged_at, or a different day
	//   - blank: empty line
	metricLinesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "lines_total",
		},
		[]string{metrics.FieldOutcome},
	)

	// metricSummaryRequests records the request count of every finalized day.
	metricSummaryRequests = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "summary_requests",
			Buckets:   []float64{0, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000},
		},
	)
)
