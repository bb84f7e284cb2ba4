package models

// DailySummary is the finished aggregate of one calendar day of access logs. It is
// built once by the aggregator and never modified afterwards; every collection is an
// ordered list so the JSON document is deterministic for the same input.
//
// Files: <summary_dir>/access_summary_<date>.json and access_summary_<date>.md
type DailySummary struct {
	Date         string `json:"date"` // YYYY-MM-DD
	GeneratedAt  string `json:"generated_at"`
	LogDir       string `json:"log_dir"`
	ScannedFiles int    `json:"scanned_files"`
	ParseErrors  int64  `json:"parse_errors"`
	LinesRead    int64  `json:"lines_read"`

	TotalRequests int64   `json:"total_requests"`
	UniqueIPs     int     `json:"unique_ips"`
	ErrorRequests int64   `json:"error_requests"`
	ErrorRatePct  float64 `json:"error_rate_pct"`

	Methods             []MethodCount            `json:"methods"`
	StatusCodes         []StatusCodeCount        `json:"status_codes"`
	StatusGroups        []StatusGroupCount       `json:"status_groups"`
	TopPaths            []PathCount              `json:"top_paths"`
	TopHosts            []HostCount              `json:"top_hosts"`
	TopIPs              []ClientIPCount          `json:"top_ips"`
	TopUserAgents       []UserAgentCount         `json:"top_user_agents"`
	UserAgentCategories []UserAgentCategoryCount `json:"user_agent_categories"`
	UserAgentFamilies   []UserAgentFamilyCount   `json:"user_agent_families"`
	IPRankings          []IPRanking              `json:"ip_rankings"`
	ErrorPaths          []PathCount              `json:"error_paths"`
	HourlyRequests      []HourlyCount            `json:"hourly_requests"` // always 24 buckets, "00".."23"

	RequestTime  LatencyStats  `json:"request_time"`
	SlowRequests []SlowRequest `json:"slow_requests"`
	Anomalies    []string      `json:"anomalies"`
}

type MethodCount struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

type StatusCodeCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatusGroupCount struct {
	Group string `json:"group"` // e.g. "2xx"
	Count int64  `json:"count"`
}

type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

type HostCount struct {
	Host  string `json:"host"`
	Count int64  `json:"count"`
}

type ClientIPCount struct {
	ClientIP string `json:"client_ip"`
	Count    int64  `json:"count"`
}

type UserAgentCount struct {
	UserAgent string `json:"user_agent"`
	Count     int64  `json:"count"`
}

type UserAgentCategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type UserAgentFamilyCount struct {
	Family string `json:"family"` // browser or client name, e.g. "Chrome", "Googlebot"
	Count  int64  `json:"count"`
}

type HourlyCount struct {
	Hour  string `json:"hour"`
	Count int64  `json:"count"`
}

// IPRanking is one row of the per-origin ranking with the origin's dominant
// user agent and path.
type IPRanking struct {
	Rank              int     `json:"rank"`
	ClientIP          string  `json:"client_ip"`
	Count             int64   `json:"count"`
	SharePct          float64 `json:"share_pct"`
	TopUserAgent      string  `json:"top_user_agent"`
	TopUserAgentCount int64   `json:"top_user_agent_count"`
	TopPath           string  `json:"top_path"`
	TopPathCount      int64   `json:"top_path_count"`
}

// LatencyStats describes request_time_s over the day. Every statistic is nil when no
// sample was observed.
type LatencyStats struct {
	Count int      `json:"count"`
	Avg   *float64 `json:"avg"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	P50   *float64 `json:"p50"`
	P95   *float64 `json:"p95"`
	P99   *float64 `json:"p99"`
}

// SlowRequest is the snapshot of a request kept in the slow-request ranking.
type SlowRequest struct {
	LoggedAt     string  `json:"logged_at"` // local time, "2006-01-02 15:04:05"
	RequestTimeS float64 `json:"request_time_s"`
	Status       *int    `json:"status"`
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	ClientIP     string  `json:"client_ip"`
}
