package configs

import (
	"path/filepath"
	"time"
)

const (
	MinTopN  = 1
	MaxTopN  = 100
	MinSlowN = 1
	MaxSlowN = 200
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	AccessLog AccessLogConfig `mapstructure:"access_log" validate:"required"`
	Summary   SummaryConfig   `mapstructure:"summary" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Anomaly   AnomalyConfig   `mapstructure:"anomaly" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,loglevel"`
}

// AccessLogConfig describes where access logs are read from.
type AccessLogConfig struct {
	Dir      string   `mapstructure:"dir" validate:"required"`
	Patterns []string `mapstructure:"patterns" validate:"required,min=1,dive,required,glob"`
}

// SummaryConfig holds report generation settings.
type SummaryConfig struct {
	Dir      string `mapstructure:"dir"` // empty means <access_log.dir>/summaries
	TopN     int    `mapstructure:"top_n"`
	SlowN    int    `mapstructure:"slow_n"`
	Timezone string `mapstructure:"timezone" validate:"required"`

	location *time.Location
}

// Location returns the time zone that defines calendar days.
func (c SummaryConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// SchedulerConfig holds the daily background job settings.
type SchedulerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	LockFile     string        `mapstructure:"lock_file" validate:"required"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"required,min=1s"`
	TriggerAt    string        `mapstructure:"trigger_at" validate:"required,datetime=15:04"`
}

// TriggerOffset returns trigger_at as a duration since local midnight.
func (c SchedulerConfig) TriggerOffset() time.Duration {
	t, err := time.Parse("15:04", c.TriggerAt)
	if err != nil {
		return 5 * time.Minute
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// AnomalyConfig holds the thresholds of the anomaly rules. A finding is raised when a
// value is greater than or equal to its threshold.
type AnomalyConfig struct {
	ErrorRatePct   float64 `mapstructure:"error_rate_pct" validate:"gte=0"`
	P95Seconds     float64 `mapstructure:"p95_seconds" validate:"gte=0"`
	OriginCount    int     `mapstructure:"origin_count" validate:"gte=0"`
	OriginSharePct float64 `mapstructure:"origin_share_pct" validate:"gte=0"`
}

// ClampTopN bounds the size of ranking lists.
func ClampTopN(n int) int {
	return clamp(n, MinTopN, MaxTopN)
}

// ClampSlowN bounds the number of retained slow requests.
func ClampSlowN(n int) int {
	return clamp(n, MinSlowN, MaxSlowN)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// DefaultSummaryDir is the summary directory used when none is configured.
func DefaultSummaryDir(logDir string) string {
	return filepath.Join(logDir, "summaries")
}
