package schedulers

import (
	"access-summary/internal/shared/metrics"
)

var (
	// metricIterationsTotal counts loop iterations by outcome.
	metricIterationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "iterations_total",
		},
		[]string{metrics.FieldOutcome, metrics.FieldErrorCode},
	)

	// metricOwner is 1 while this process holds the scheduler lock.
	metricOwner = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "owner",
		},
	)

	metricLastGeneratedTimestamp = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "last_generated_timestamp_seconds",
		},
	)
)
