package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Remote        RemoteConfig
	Resume        ResumeConfig
	JobSearch     JobSearchConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Metrics       MetricsConfig
	Cache         CacheConfig
}

type AppConfig struct {
	Env string
}

type RemoteConfig struct {
	BaseURL               string
	RequestTimeoutSeconds int
	RatePerSecond         float64
	RateBurst             int
}

type ResumeConfig struct {
	MaxUploadBytes int64
}

type JobSearchConfig struct {
	Provider      string
	CustomBaseURL string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	UploadIntervalSeconds int
}

type MetricsConfig struct {
	Enabled    bool
	ListenAddr string
}

type CacheConfig struct {
	ProfileTTLSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("API_BASE_URL", "http://127.0.0.1:5000")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)
	v.SetDefault("API_RATE_PER_SECOND", 10.0)
	v.SetDefault("API_RATE_BURST", 5)
	v.SetDefault("RESUME_MAX_UPLOAD_BYTES", 16<<20)
	v.SetDefault("JOB_SEARCH_PROVIDER", "linkedin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, empty disables tracing
	v.SetDefault("O11Y_SERVICE_NAME", "internfinder-client")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "internfinder-client")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("METRICS_ENABLED", false)
	v.SetDefault("METRICS_LISTEN_ADDR", "127.0.0.1:9464")
	v.SetDefault("PROFILE_CACHE_TTL", 30)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig()

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Remote: RemoteConfig{
			BaseURL:               v.GetString("API_BASE_URL"),
			RequestTimeoutSeconds: v.GetInt("API_TIMEOUT_SECONDS"),
			RatePerSecond:         v.GetFloat64("API_RATE_PER_SECOND"),
			RateBurst:             v.GetInt("API_RATE_BURST"),
		},
		Resume: ResumeConfig{
			MaxUploadBytes: v.GetInt64("RESUME_MAX_UPLOAD_BYTES"),
		},
		JobSearch: JobSearchConfig{
			Provider:      v.GetString("JOB_SEARCH_PROVIDER"),
			CustomBaseURL: v.GetString("JOB_SEARCH_CUSTOM_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Metrics: MetricsConfig{
			Enabled:    v.GetBool("METRICS_ENABLED"),
			ListenAddr: v.GetString("METRICS_LISTEN_ADDR"),
		},
		Cache: CacheConfig{
			ProfileTTLSeconds: v.GetInt("PROFILE_CACHE_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.Remote.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("API_TIMEOUT_SECONDS must be positive")
	}
	if c.Resume.MaxUploadBytes <= 0 {
		return fmt.Errorf("RESUME_MAX_UPLOAD_BYTES must be positive")
	}

	switch c.JobSearch.Provider {
	case "linkedin", "indeed":
	case "custom":
		if c.JobSearch.CustomBaseURL == "" {
			return fmt.Errorf("JOB_SEARCH_CUSTOM_BASE_URL is required with the custom provider")
		}
	default:
		return fmt.Errorf("unknown JOB_SEARCH_PROVIDER %q", c.JobSearch.Provider)
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return fmt.Errorf("METRICS_LISTEN_ADDR is required when metrics are enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
