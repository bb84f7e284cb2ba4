package reports

import (
	"fmt"
	"strings"

	"access-summary/internal/models"
)

const (
	rankingHeader    = "| Rank | IP | Requests | Share(%) | Top User-Agent | Top Path |"
	rankingSeparator = "| --- | --- | ---: | ---: | --- | --- |"
	rankingEmptyRow  = "| - | - | 0 | 0 | - | - |"
	noAnomalies      = "- None"
	missingValue     = "-"
)

// RenderMarkdown renders the human-readable report of a summary. It only reads the
// summary, so a report reloaded from JSON renders the same text as a fresh one.
func RenderMarkdown(summary *models.DailySummary) string {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}
	raw := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("# Access Log Daily Summary (%s)", orDash(summary.Date))
	raw("")
	line("- Generated at: %s", orDash(summary.GeneratedAt))
	line("- Total requests: %d", summary.TotalRequests)
	line("- Unique IPs: %d", summary.UniqueIPs)
	line("- Error requests (4xx/5xx): %d (%s%%)", summary.ErrorRequests, models.FormatDecimal(summary.ErrorRatePct))
	line("- Parse errors: %d", summary.ParseErrors)
	raw("")

	rt := summary.RequestTime
	raw("## Request Time")
	line("- avg: %s", optionalDecimal(rt.Avg))
	line("- p50: %s", optionalDecimal(rt.P50))
	line("- p95: %s", optionalDecimal(rt.P95))
	line("- p99: %s", optionalDecimal(rt.P99))
	line("- max: %s", optionalDecimal(rt.Max))
	raw("")

	raw("## Top Paths")
	for _, row := range summary.TopPaths {
		line("- %s: %d", row.Path, row.Count)
	}
	raw("")

	raw("## Status Groups")
	for _, row := range summary.StatusGroups {
		line("- %s: %d", row.Group, row.Count)
	}
	raw("")

	raw("## IP Access Ranking")
	raw(rankingHeader)
	raw(rankingSeparator)
	if len(summary.IPRankings) == 0 {
		raw(rankingEmptyRow)
	}
	for _, row := range summary.IPRankings {
		line("| %d | %s | %d | %s | %s | %s (%d) |",
			row.Rank,
			EscapeCell(row.ClientIP),
			row.Count,
			models.FormatDecimal(row.SharePct),
			EscapeCell(row.TopUserAgent),
			EscapeCell(row.TopPath),
			row.TopPathCount,
		)
	}
	raw("")

	raw("## Anomalies")
	if len(summary.Anomalies) == 0 {
		raw(noAnomalies)
	}
	for _, finding := range summary.Anomalies {
		line("- %s", finding)
	}

	return b.String()
}

// EscapeCell makes free text safe inside a markdown table cell.
func EscapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	value = strings.ReplaceAll(value, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(value)
}

func optionalDecimal(v *float64) string {
	if v == nil {
		return missingValue
	}
	return models.FormatDecimal(*v)
}

func orDash(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}
