package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"access-summary/internal/shared/validators"

	"github.com/spf13/viper"
)

const EnvPrefix = "ACCESS_SUMMARY"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 300)
	v.SetDefault("server.idle_timeout", 60)

	v.SetDefault("log.level", "info")

	v.SetDefault("access_log.dir", "/var/log/nginx")
	v.SetDefault("access_log.patterns", []string{"access_json.log", "access_json_*.log", "access_json_*.log.gz"})

	v.SetDefault("summary.dir", "")
	v.SetDefault("summary.top_n", 10)
	v.SetDefault("summary.slow_n", 20)
	v.SetDefault("summary.timezone", "Local")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.lock_file", "/tmp/access-summary-scheduler.lock")
	v.SetDefault("scheduler.poll_interval", "30s")
	v.SetDefault("scheduler.trigger_at", "00:05")

	v.SetDefault("anomaly.error_rate_pct", 10.0)
	v.SetDefault("anomaly.p95_seconds", 1.5)
	v.SetDefault("anomaly.origin_count", 120)
	v.SetDefault("anomaly.origin_share_pct", 35.0)
}

// LoadConfig builds the configuration from defaults, an optional YAML file and
// ACCESS_SUMMARY_* environment variables (highest precedence), then validates it.
// A missing file at configPath is not an error.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize resolves derived values and clamps sizes into their allowed ranges.
func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Summary.Dir) == "" {
		cfg.Summary.Dir = DefaultSummaryDir(cfg.AccessLog.Dir)
	}
	cfg.Summary.TopN = ClampTopN(cfg.Summary.TopN)
	cfg.Summary.SlowN = ClampSlowN(cfg.Summary.SlowN)

	loc, err := time.LoadLocation(cfg.Summary.Timezone)
	if err != nil {
		return fmt.Errorf("config validation failed: summary.timezone (%w)", err)
	}
	cfg.Summary.location = loc
	return nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "server.port")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Server.Port" -> "server.port")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	case "datetime":
		msg = fmt.Sprintf("%s (layout=%s)", field, e.Param())
	case validators.TagGlob:
		msg = fmt.Sprintf("%s (malformed pattern %q)", field, e.Value())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
