package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the harness configuration loaded from .env files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIURL      string `mapstructure:"api_url"`
	LocalRunner bool   `mapstructure:"local_runner"`
	ConsoleLogs bool   `mapstructure:"console_logs"`

	LogDirectory     string `mapstructure:"log_directory"`
	ReportDirectory  string `mapstructure:"report_directory"`
	ExpectationsFile string `mapstructure:"expectations_file"`
	ReportersFile    string `mapstructure:"reporters_file"`

	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	MaxLatencyMs          int64         `mapstructure:"max_latency_ms"`
	MaxLatency            time.Duration `mapstructure:"-"`
}

// envFiles are loaded in order; values already present in the environment win.
var envFiles = []string{".env", "configs/.env"}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()

	v.SetDefault("app_name", "poetrydb-api-tests")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_url", "")
	v.SetDefault("local_runner", false)
	v.SetDefault("console_logs", false)
	v.SetDefault("log_directory", "./reports/logs")
	v.SetDefault("report_directory", "./reports")
	v.SetDefault("expectations_file", "")
	v.SetDefault("reporters_file", "")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("max_latency_ms", 500)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url is required")
	}
	if strings.TrimSpace(cfg.LogDirectory) == "" {
		return nil, fmt.Errorf("log_directory must not be empty")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.MaxLatencyMs <= 0 {
		return nil, fmt.Errorf("invalid max_latency_ms (must be positive milliseconds)")
	}
	cfg.MaxLatency = time.Duration(cfg.MaxLatencyMs) * time.Millisecond

	return &cfg, nil
}

// Environment names where the run executes, as shown in reports.
func (c *Config) Environment() string {
	if c != nil && c.LocalRunner {
		return "Local"
	}
	return "CI"
}
