package aggregators

import (
	"fmt"

	"access-summary/internal/models"
)

// AnomalyThresholds are inclusive: a value equal to its threshold raises the finding.
type AnomalyThresholds struct {
	ErrorRatePct   float64
	P95Seconds     float64
	OriginCount    int64
	OriginSharePct float64
}

func DefaultAnomalyThresholds() AnomalyThresholds {
	return AnomalyThresholds{
		ErrorRatePct:   10.0,
		P95Seconds:     1.5,
		OriginCount:    120,
		OriginSharePct: 35.0,
	}
}

//go:generate mockgen -source=anomaly_detector.go -destination=./mocks/anomaly_detector_mock.go -package=mocks
type AnomalyDetector interface {
	// Detect evaluates the rules in a fixed order: no traffic, error rate, p95 latency,
	// single-origin concentration. Several findings may be returned.
	Detect(summary *models.DailySummary) []string
}

type anomalyDetector struct {
	thresholds AnomalyThresholds
}

func NewAnomalyDetector(thresholds AnomalyThresholds) AnomalyDetector {
	return &anomalyDetector{thresholds: thresholds}
}

func (d *anomalyDetector) Detect(summary *models.DailySummary) []string {
	findings := make([]string, 0)

	if summary.TotalRequests == 0 {
		findings = append(findings, "no requests recorded")
	}

	if summary.ErrorRatePct >= d.thresholds.ErrorRatePct {
		findings = append(findings, fmt.Sprintf("high error rate (4xx/5xx: %s%%)", models.FormatDecimal(summary.ErrorRatePct)))
	}

	if p95 := summary.RequestTime.P95; p95 != nil && *p95 >= d.thresholds.P95Seconds {
		findings = append(findings, fmt.Sprintf("high latency (p95: %ss)", models.FormatDecimal(*p95)))
	}

	if len(summary.TopIPs) > 0 && summary.TotalRequests > 0 {
		top := summary.TopIPs[0]
		concentration := float64(top.Count) / float64(summary.TotalRequests) * 100
		if top.Count >= d.thresholds.OriginCount || concentration >= d.thresholds.OriginSharePct {
			findings = append(findings, fmt.Sprintf("high single-origin concentration (%s: %d requests, %.1f%%)", top.ClientIP, top.Count, concentration))
		}
	}

	return findings
}
