package logsources

import (
	"access-summary/internal/shared/metrics"
)

var (
	// metricLogFilesTotal counts log files by outcome: opened, open_failed or read_failed.
	metricLogFilesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "log_files_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricLogLinesReadTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "log_lines_read_total",
		},
	)
)
