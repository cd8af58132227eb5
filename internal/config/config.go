package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/compute"
	"github.com/shiftlens/shiftlens/internal/pareto"
	"github.com/shiftlens/shiftlens/internal/priority"
	"github.com/shiftlens/shiftlens/internal/report"
	"github.com/shiftlens/shiftlens/internal/trend"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort = 8080
	DefaultCacheTTL = 5 * time.Minute
)

// Config is the parsed config.yaml.
type Config struct {
	Policy PolicyConfig `yaml:"policy"`
	Server ServerConfig `yaml:"server"`
	Alerts AlertsConfig `yaml:"alerts"`
}

// PolicyConfig holds the constants of the analytics core.
type PolicyConfig struct {
	ShiftAvailableHours   float64 `yaml:"shift_available_hours"`
	BigStoppageMinutes    float64 `yaml:"big_stoppage_minutes"`
	ParetoLimit           int     `yaml:"pareto_limit"`
	DimensionLimit        int     `yaml:"dimension_limit"`
	CriticalCumulativePct float64 `yaml:"critical_cumulative_pct"`
	HighCumulativePct     float64 `yaml:"high_cumulative_pct"`

	// InsightSeed enables narrative insights when non-zero.
	InsightSeed int64 `yaml:"insight_seed"`
}

// Report converts the policy section into the report package's Policy.
func (p PolicyConfig) Report() report.Policy {
	return report.Policy{
		ShiftAvailableHours: p.ShiftAvailableHours,
		BigThresholdMinutes: p.BigStoppageMinutes,
		ParetoLimit:         p.ParetoLimit,
		DimensionLimit:      p.DimensionLimit,
		Thresholds: priority.Thresholds{
			CriticalPct: p.CriticalCumulativePct,
			HighPct:     p.HighCumulativePct,
		},
		InsightSeed: p.InsightSeed,
	}
}

// ServerConfig holds the settings of cmd/shiftlens-server.
type ServerConfig struct {
	// HTTPPort is the port the REST API and /metrics listen on (default 8080).
	HTTPPort int `yaml:"http_port"`

	// RecordsPath is the YAML or JSON snapshot file the server reads.
	RecordsPath string `yaml:"records_path"`

	// CacheTTL is how long a computed report is served before it is rebuilt.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Auth configures how the server authenticates REST clients.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig controls client authentication on the HTTP API.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	// Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// AlertsConfig holds alerting rules and webhook delivery targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines one threshold condition evaluated against every shift.
type AlertRule struct {
	// Name identifies the rule; together with the shift id it is the
	// deduplication key.
	Name string `yaml:"name"`

	// Condition is a simple expression: "oee < 60", "big_minutes > 120".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration. Defaults to 15 minutes.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: teams | slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the config file at path.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	th := priority.DefaultThresholds()
	return &Config{
		Policy: PolicyConfig{
			ShiftAvailableHours:   compute.DefaultShiftAvailableHours,
			BigStoppageMinutes:    classify.DefaultBigThresholdMinutes,
			ParetoLimit:           pareto.DefaultLimit,
			DimensionLimit:        trend.DefaultDimensionLimit,
			CriticalCumulativePct: th.CriticalPct,
			HighCumulativePct:     th.HighPct,
		},
		Server: ServerConfig{
			HTTPPort: DefaultHTTPPort,
			CacheTTL: DefaultCacheTTL,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	p := cfg.Policy
	if p.ShiftAvailableHours <= 0 || p.ShiftAvailableHours > 24 {
		return fmt.Errorf("policy.shift_available_hours %v is out of range (0, 24]", p.ShiftAvailableHours)
	}
	if p.BigStoppageMinutes <= 0 {
		return fmt.Errorf("policy.big_stoppage_minutes must be positive")
	}
	if p.ParetoLimit < 1 {
		return fmt.Errorf("policy.pareto_limit %d must be at least 1", p.ParetoLimit)
	}
	if p.DimensionLimit < 1 {
		return fmt.Errorf("policy.dimension_limit %d must be at least 1", p.DimensionLimit)
	}
	if p.CriticalCumulativePct <= 0 || p.CriticalCumulativePct > p.HighCumulativePct || p.HighCumulativePct > 100 {
		return fmt.Errorf("policy tiers must satisfy 0 < critical (%v) <= high (%v) <= 100",
			p.CriticalCumulativePct, p.HighCumulativePct)
	}

	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.CacheTTL < 0 {
		return fmt.Errorf("server.cache_ttl must not be negative")
	}

	for i, r := range cfg.Alerts.Rules {
		if r.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if r.Condition == "" {
			return fmt.Errorf("alerts.rules[%d] %q: condition is required", i, r.Name)
		}
		switch r.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("alerts.rules[%d] %q: severity %q unknown: want critical|warning|info", i, r.Name, r.Severity)
		}
	}
	for i, w := range cfg.Alerts.Webhooks {
		switch w.Type {
		case "teams", "slack", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d]: type %q unknown: want teams|slack|http", i, w.Type)
		}
	}
	return nil
}
