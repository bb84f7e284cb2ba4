package parsers

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"access-summary/internal/models"

	"github.com/goccy/go-json"
)

var (
	// ErrBlankLine is returned for empty or whitespace-only lines.
	ErrBlankLine = errors.New("blank line")
	// ErrMalformedLine is returned when a line is not a JSON object. Callers count it as a parse error.
	ErrMalformedLine = errors.New("malformed log line")
	// ErrMissingTimestamp is returned when logged_at is absent or unparseable. The line is
	// silently excluded.
	ErrMissingTimestamp = errors.New("missing or invalid logged_at")
)

var (
	botUserAgentPattern    = regexp.MustCompile(`(?i)bot|crawler|spider|slurp|bingpreview|mediapartners|headless|python-requests|curl|wget`)
	mobileUserAgentPattern = regexp.MustCompile(`(?i)android|iphone|ipad|ipod|mobile|windows phone|blackberry`)
)

// timestampLayouts are the ISO-8601 shapes accepted for logged_at. Layouts without a zone
// are interpreted in the parser location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

//go:generate mockgen -source=record_parser.go -destination=./mocks/record_parser_mock.go -package=mocks
type RecordParser interface {
	// Parse turns one raw log line into an AccessRecord.
	Parse(line string) (*models.AccessRecord, error)
}

type recordParser struct {
	loc *time.Location
}

// NewRecordParser returns a parser that converts every timestamp to loc.
func NewRecordParser(loc *time.Location) RecordParser {
	if loc == nil {
		loc = time.Local
	}
	return &recordParser{loc: loc}
}

func (p *recordParser) Parse(line string) (*models.AccessRecord, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrBlankLine
	}

	var decoded any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLine, err)
	}
	payload, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedLine)
	}

	loggedAt, ok := p.timestamp(payload["logged_at"])
	if !ok {
		return nil, ErrMissingTimestamp
	}

	rawUserAgent := stringField(payload["user_agent"])
	record := &models.AccessRecord{
		LoggedAt:          loggedAt,
		Method:            withDefault(strings.ToUpper(stringField(payload["method"])), models.DefaultMethod),
		Path:              withDefault(stringField(payload["path"]), models.DefaultPath),
		Host:              withDefault(stringField(payload["host"]), models.DefaultHost),
		ClientIP:          withDefault(stringField(payload["client_ip"]), models.DefaultClientIP),
		UserAgent:         withDefault(rawUserAgent, models.DefaultUserAgent),
		UserAgentCategory: ClassifyUserAgent(rawUserAgent),
	}
	if status, ok := statusField(payload["status"]); ok {
		record.Status = &status
	}
	if requestTime, ok := requestTimeField(payload["request_time_s"]); ok {
		record.RequestTime = &requestTime
	}

	return record, nil
}

func (p *recordParser) timestamp(v any) (time.Time, bool) {
	raw, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, p.loc); err == nil {
			return t.In(p.loc), true
		}
	}
	return time.Time{}, false
}

// ClassifyUserAgent maps a raw user agent to bot, mobile, desktop or unknown (empty).
func ClassifyUserAgent(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return models.UserAgentCategoryUnknown
	}
	if botUserAgentPattern.MatchString(userAgent) {
		return models.UserAgentCategoryBot
	}
	if mobileUserAgentPattern.MatchString(userAgent) {
		return models.UserAgentCategoryMobile
	}
	return models.UserAgentCategoryDesktop
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func statusField(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || math.Abs(t) > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func requestTimeField(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
