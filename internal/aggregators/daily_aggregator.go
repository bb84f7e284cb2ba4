package aggregators

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"access-summary/internal/models"
	"access-summary/internal/parsers"

	"github.com/mileusna/useragent"
)

const (
	DateLayout     = "2006-01-02"
	loggedAtLayout = "2006-01-02 15:04:05"
	percentScale   = 2
)

// Provenance describes where a summary came from.
type Provenance struct {
	LogDir       string
	ScannedFiles int
	GeneratedAt  time.Time
}

type DailyAggregator interface {
	// ObserveLine parses one raw line and aggregates it when it belongs to the target day.
	ObserveLine(line string)
	// Add aggregates a parsed record. It returns false when the record is for another day.
	Add(record *models.AccessRecord) bool
	// Finalize builds the immutable summary. The aggregator must not be used afterwards.
	Finalize(provenance Provenance) *models.DailySummary
}

type dailyAggregator struct {
	year     int
	month    time.Month
	day      int
	loc      *time.Location
	topN     int
	parser   parsers.RecordParser
	detector AnomalyDetector

	linesRead     int64
	parseErrors   int64
	totalRequests int64
	errorRequests int64
	hourly        [24]int64

	statusCodes         *counter
	statusGroups        *counter
	methods             *counter
	paths               *counter
	hosts               *counter
	clientIPs           *counter
	userAgents          *counter
	userAgentCategories *counter
	userAgentFamilies   *counter
	errorPaths          *counter
	userAgentsByIP      map[string]*counter
	pathsByIP           map[string]*counter
	familyByUserAgent   map[string]string

	latencies []float64
	slow      *slowRequestTracker
}

// NewDailyAggregator aggregates the records of date (midnight to midnight in loc).
func NewDailyAggregator(date time.Time, loc *time.Location, topN, slowN int, parser parsers.RecordParser, detector AnomalyDetector) DailyAggregator {
	year, month, day := date.Date()
	return &dailyAggregator{
		year:     year,
		month:    month,
		day:      day,
		loc:      loc,
		topN:     topN,
		parser:   parser,
		detector: detector,

		statusCodes:         newCounter(),
		statusGroups:        newCounter(),
		methods:             newCounter(),
		paths:               newCounter(),
		hosts:               newCounter(),
		clientIPs:           newCounter(),
		userAgents:          newCounter(),
		userAgentCategories: newCounter(),
		userAgentFamilies:   newCounter(),
		errorPaths:          newCounter(),
		userAgentsByIP:      make(map[string]*counter),
		pathsByIP:           make(map[string]*counter),
		familyByUserAgent:   make(map[string]string),

		latencies: make([]float64, 0),
		slow:      newSlowRequestTracker(slowN),
	}
}

func (a *dailyAggregator) ObserveLine(line string) {
	a.linesRead++

	record, err := a.parser.Parse(line)
	switch {
	case err == nil:
	case errors.Is(err, parsers.ErrMalformedLine):
		a.parseErrors++
		metricLinesTotal.WithLabelValues(outcomeParseError).Inc()
		return
	case errors.Is(err, parsers.ErrBlankLine):
		metricLinesTotal.WithLabelValues(outcomeBlank).Inc()
		return
	default:
		metricLinesTotal.WithLabelValues(outcomeRejected).Inc()
		return
	}

	if !a.Add(record) {
		metricLinesTotal.WithLabelValues(outcomeRejected).Inc()
		return
	}
	metricLinesTotal.WithLabelValues(outcomeAccepted).Inc()
}

func (a *dailyAggregator) Add(record *models.AccessRecord) bool {
	loggedAt := record.LoggedAt.In(a.loc)
	if y, m, d := loggedAt.Date(); y != a.year || m != a.month || d != a.day {
		return false
	}

	a.totalRequests++
	a.hourly[loggedAt.Hour()]++

	if record.Status != nil {
		status := *record.Status
		a.statusCodes.inc(strconv.Itoa(status))
		a.statusGroups.inc(statusGroup(status))
	}

	a.methods.inc(record.Method)
	a.paths.inc(record.Path)
	a.hosts.inc(record.Host)
	a.clientIPs.inc(record.ClientIP)
	a.userAgents.inc(record.UserAgent)
	a.userAgentCategories.inc(record.UserAgentCategory)
	a.userAgentFamilies.inc(a.userAgentFamily(record.UserAgent))

	if record.IsError() {
		a.errorRequests++
		a.errorPaths.inc(record.Path)
	}

	nestedCounter(a.userAgentsByIP, record.ClientIP).inc(record.UserAgent)
	nestedCounter(a.pathsByIP, record.ClientIP).inc(record.Path)

	if record.RequestTime != nil {
		latency := *record.RequestTime
		a.latencies = append(a.latencies, latency)
		a.slow.offer(latency, models.SlowRequest{
			LoggedAt:     loggedAt.Format(loggedAtLayout),
			RequestTimeS: models.RoundTo(latency, latencyPrecision),
			Status:       record.Status,
			Method:       record.Method,
			Path:         record.Path,
			ClientIP:     record.ClientIP,
		})
	}

	return true
}

func (a *dailyAggregator) Finalize(provenance Provenance) *models.DailySummary {
	summary := &models.DailySummary{
		Date:          time.Date(a.year, a.month, a.day, 0, 0, 0, 0, a.loc).Format(DateLayout),
		GeneratedAt:   provenance.GeneratedAt.In(a.loc).Format(time.RFC3339),
		LogDir:        provenance.LogDir,
		ScannedFiles:  provenance.ScannedFiles,
		ParseErrors:   a.parseErrors,
		LinesRead:     a.linesRead,
		TotalRequests: a.totalRequests,
		UniqueIPs:     a.clientIPs.len(),
		ErrorRequests: a.errorRequests,
		ErrorRatePct:  a.pct(a.errorRequests),

		Methods:             rows(a.methods.top(a.topN), methodRow),
		StatusCodes:         rows(a.statusCodes.top(a.topN), statusCodeRow),
		StatusGroups:        rows(a.statusGroups.top(a.topN), statusGroupRow),
		TopPaths:            rows(a.paths.top(a.topN), pathRow),
		TopHosts:            rows(a.hosts.top(a.topN), hostRow),
		TopIPs:              rows(a.clientIPs.top(a.topN), clientIPRow),
		TopUserAgents:       rows(a.userAgents.top(a.topN), userAgentRow),
		UserAgentCategories: rows(a.userAgentCategories.top(a.topN), userAgentCategoryRow),
		UserAgentFamilies:   rows(a.userAgentFamilies.top(a.topN), userAgentFamilyRow),
		IPRankings:          a.ipRankings(),
		ErrorPaths:          rows(a.errorPaths.top(a.topN), pathRow),
		HourlyRequests:      a.hourlyRequests(),

		RequestTime:  ComputeLatencyStats(a.latencies),
		SlowRequests: a.slow.result(),
	}

	if a.detector != nil {
		summary.Anomalies = a.detector.Detect(summary)
	}
	if summary.Anomalies == nil {
		summary.Anomalies = make([]string, 0)
	}

	metricSummaryRequests.Observe(float64(summary.TotalRequests))
	return summary
}

func (a *dailyAggregator) ipRankings() []models.IPRanking {
	top := a.clientIPs.top(a.topN)
	rankings := make([]models.IPRanking, 0, len(top))
	for i, entry := range top {
		ranking := models.IPRanking{
			Rank:         i + 1,
			ClientIP:     entry.key,
			Count:        entry.count,
			SharePct:     a.pct(entry.count),
			TopUserAgent: models.DefaultUserAgent,
			TopPath:      models.DefaultPath,
		}
		if ua, ok := nestedCounter(a.userAgentsByIP, entry.key).mostCommon(); ok {
			ranking.TopUserAgent, ranking.TopUserAgentCount = ua.key, ua.count
		}
		if path, ok := nestedCounter(a.pathsByIP, entry.key).mostCommon(); ok {
			ranking.TopPath, ranking.TopPathCount = path.key, path.count
		}
		rankings = append(rankings, ranking)
	}
	return rankings
}

func (a *dailyAggregator) hourlyRequests() []models.HourlyCount {
	hours := make([]models.HourlyCount, 0, len(a.hourly))
	for hour, count := range a.hourly {
		hours = append(hours, models.HourlyCount{Hour: fmt.Sprintf("%02d", hour), Count: count})
	}
	return hours
}

func (a *dailyAggregator) pct(count int64) float64 {
	if a.totalRequests == 0 {
		return 0
	}
	return models.RoundTo(float64(count)/float64(a.totalRequests)*100, percentScale)
}

// userAgentFamily names the browser or client behind ua, falling back to ua itself.
func (a *dailyAggregator) userAgentFamily(ua string) string {
	if family, ok := a.familyByUserAgent[ua]; ok {
		return family
	}
	family := ua
	if parsed := useragent.Parse(ua); parsed.Name != "" {
		family = parsed.Name
	}
	a.familyByUserAgent[ua] = family
	return family
}

// statusGroup returns the status class, e.g. 404 -> "4xx". Negative codes floor
// towards minus infinity.
func statusGroup(status int) string {
	class := status / 100
	if status < 0 && status%100 != 0 {
		class--
	}
	return strconv.Itoa(class) + "xx"
}

func nestedCounter(m map[string]*counter, key string) *counter {
	c, ok := m[key]
	if !ok {
		c = newCounter()
		m[key] = c
	}
	return c
}

func methodRow(e counterEntry) models.MethodCount {
	return models.MethodCount{Method: e.key, Count: e.count}
}

func statusCodeRow(e counterEntry) models.StatusCodeCount {
	return models.StatusCodeCount{Status: e.key, Count: e.count}
}

func statusGroupRow(e counterEntry) models.StatusGroupCount {
	return models.StatusGroupCount{Group: e.key, Count: e.count}
}

func hostRow(e counterEntry) models.HostCount {
	return models.HostCount{Host: e.key, Count: e.count}
}

func clientIPRow(e counterEntry) models.ClientIPCount {
	return models.ClientIPCount{ClientIP: e.key, Count: e.count}
}

func userAgentRow(e counterEntry) models.UserAgentCount {
	return models.UserAgentCount{UserAgent: e.key, Count: e.count}
}

func userAgentCategoryRow(e counterEntry) models.UserAgentCategoryCount {
	return models.UserAgentCategoryCount{Category: e.key, Count: e.count}
}

func userAgentFamilyRow(e counterEntry) models.UserAgentFamilyCount {
	return models.UserAgentFamilyCount{Family: e.key, Count: e.count}
}

func pathRow(e counterEntry) models.PathCount {
	return models.PathCount{Path: e.key, Count: e.count}
}

func rows[T any](entries []counterEntry, convert func(counterEntry) T) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, convert(e))
	}
	return out
}
