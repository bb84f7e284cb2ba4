package reports

import (
	"strings"
	"testing"

	"access-summary/internal/models"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestRenderMarkdown_FullReport(t *testing.T) {
	t.Parallel()

	summary := &models.DailySummary{
		Date:          "2025-12-28",
		GeneratedAt:   "2025-12-29T00:05:00+09:00",
		TotalRequests: 3,
		UniqueIPs:     2,
		ErrorRequests: 1,
		ErrorRatePct:  33.33,
		ParseErrors:   4,
		RequestTime: models.LatencyStats{
			Count: 3,
			Avg:   floatPtr(0.8),
			Min:   floatPtr(0.1),
			Max:   floatPtr(2),
			P50:   floatPtr(0.3),
			P95:   floatPtr(1.83),
			P99:   floatPtr(1.966),
		},
		TopPaths:     []models.PathCount{{Path: "/", Count: 2}, {Path: "/api", Count: 1}},
		StatusGroups: []models.StatusGroupCount{{Group: "2xx", Count: 2}, {Group: "5xx", Count: 1}},
		IPRankings: []models.IPRanking{
			{Rank: 1, ClientIP: "A", Count: 2, SharePct: 66.67, TopUserAgent: "curl/8.4.0", TopUserAgentCount: 2, TopPath: "/", TopPathCount: 2},
			{Rank: 2, ClientIP: "B", Count: 1, SharePct: 33.33, TopUserAgent: "Mozilla/5.0 (iPhone)", TopUserAgentCount: 1, TopPath: "/api", TopPathCount: 1},
		},
		Anomalies: []string{"high error rate (4xx/5xx: 33.33%)"},
	}

	want := strings.Join([]string{
		"# Access Log Daily Summary (2025-12-28)",
		"",
		"- Generated at: 2025-12-29T00:05:00+09:00",
		"- Total requests: 3",
		"- Unique IPs: 2",
		"- Error requests (4xx/5xx): 1 (33.33%)",
		"- Parse errors: 4",
		"",
		"## Request Time",
		"- avg: 0.8",
		"- p50: 0.3",
		"- p95: 1.83",
		"- p99: 1.966",
		"- max: 2.0",
		"",
		"## Top Paths",
		"- /: 2",
		"- /api: 1",
		"",
		"## Status Groups",
		"- 2xx: 2",
		"- 5xx: 1",
		"",
		"## IP Access Ranking",
		"| Rank | IP | Requests | Share(%) | Top User-Agent | Top Path |",
		"| --- | --- | ---: | ---: | --- | --- |",
		"| 1 | A | 2 | 66.67 | curl/8.4.0 | / (2) |",
		"| 2 | B | 1 | 33.33 | Mozilla/5.0 (iPhone) | /api (1) |",
		"",
		"## Anomalies",
		"- high error rate (4xx/5xx: 33.33%)",
		"",
	}, "\n")

	assert.Equal(t, want, RenderMarkdown(summary))
}

func TestRenderMarkdown_EmptyDay(t *testing.T) {
	t.Parallel()

	got := RenderMarkdown(&models.DailySummary{Date: "2025-12-28", GeneratedAt: "2025-12-29T00:05:00Z"})

	assert.Contains(t, got, "- Error requests (4xx/5xx): 0 (0.0%)\n")
	assert.Contains(t, got, "- avg: -\n")
	assert.Contains(t, got, "- max: -\n")
	assert.Contains(t, got, "## Top Paths\n\n## Status Groups\n\n")
	assert.Contains(t, got, "| --- | --- | ---: | ---: | --- | --- |\n| - | - | 0 | 0 | - | - |\n")
	assert.True(t, strings.HasSuffix(got, "## Anomalies\n- None\n"))
}

func TestRenderMarkdown_EscapesTableCells(t *testing.T) {
	t.Parallel()

	summary := &models.DailySummary{
		Date: "2025-12-28",
		IPRankings: []models.IPRanking{
			{Rank: 1, ClientIP: "A|B", Count: 1, SharePct: 100, TopUserAgent: "evil|agent\nline", TopPath: "/a|b", TopPathCount: 1},
		},
	}

	got := RenderMarkdown(summary)

	assert.Contains(t, got, `| 1 | A\|B | 1 | 100.0 | evil\|agent line | /a\|b (1) |`)
}

func TestEscapeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "a|b", want: `a\|b`},
		{in: "a\nb", want: "a b"},
		{in: "a\r\nb", want: "a b"},
		{in: "|\n|", want: `\| \|`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeCell(tt.in))
	}
}
