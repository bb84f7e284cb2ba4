package models

import "time"

// User-agent categories, assigned with bot patterns taking precedence over mobile ones.
const (
	UserAgentCategoryBot     = "bot"
	UserAgentCategoryMobile  = "mobile"
	UserAgentCategoryDesktop = "desktop"
	UserAgentCategoryUnknown = "unknown"
)

// Placeholders used when a string field of a log line is missing or blank.
const (
	DefaultMethod    = "UNKNOWN"
	DefaultPath      = "/"
	DefaultHost      = "-"
	DefaultClientIP  = "unknown"
	DefaultUserAgent = "(empty)"
)

// AccessRecord is one parsed access-log line.
//
// Example log line:
//
//	{
//	  "logged_at": "2025-12-28T18:03:15+09:00",
//	  "status": 200,
//	  "method": "GET",
//	  "host": "example.com",
//	  "path": "/about",
//	  "client_ip": "203.0.113.7",
//	  "user_agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
//	  "request_time_s": 0.042
//	}
type AccessRecord struct {
	LoggedAt          time.Time // already converted to the summary location
	Status            *int
	Method            string
	Path              string
	Host              string
	ClientIP          string
	UserAgent         string
	UserAgentCategory string
	RequestTime       *float64 // seconds, finite and non-negative
}

// IsError reports whether the record has a 4xx/5xx status.
func (r *AccessRecord) IsError() bool {
	return r.Status != nil && *r.Status >= 400
}
