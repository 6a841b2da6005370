// Package config loads service settings from config.toml, .env files and
// EVENTSAAS_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "EVENTSAAS"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Billing   BillingConfig   `mapstructure:"billing"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"` // development, staging, production
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or a file path
}

// DatabaseConfig describes the PostgreSQL pool. Lifetimes are in minutes.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"dbname"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"`
}

// RedisConfig backs the token blacklist and the plan catalogue cache
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig configures the access/refresh pair. An empty RefreshSecret
// reuses Secret.
type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	Issuer                 string        `mapstructure:"issuer"`
	MaxRefreshCount        int           `mapstructure:"max_refresh_count"`
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`

	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// The auth limiter guards signup, signin and refresh per client IP
	AuthRateLimitEnabled  bool          `mapstructure:"auth_rate_limit_enabled"`
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`

	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	CORSAllowMethods []string `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders []string `mapstructure:"cors_allow_headers"`
	TrustedProxies   []string `mapstructure:"trusted_proxies"`

	// API docs under /swagger. An empty allow list admits every client.
	SwaggerEnabled    bool     `mapstructure:"swagger_enabled"`
	SwaggerAllowedIPs []string `mapstructure:"swagger_allowed_ips"`
}

// TelemetryConfig configures OTLP export. Traces, metrics and logs share
// the collector endpoint.
type TelemetryConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SamplingRatio     float64 `mapstructure:"sampling_ratio"`
	ServiceName       string  `mapstructure:"service_name"`
	Insecure          bool    `mapstructure:"insecure"`

	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsExportInterval time.Duration `mapstructure:"metrics_export_interval"`
	LogsEnabled           bool          `mapstructure:"logs_enabled"`
	LogsLevel             string        `mapstructure:"logs_level"`

	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"` // development only
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`

	Profiling ProfilingConfig `mapstructure:"profiling"`
}

// ProfilingConfig configures continuous profiling pushed to a Pyroscope
// server. It is independent of OTLP export, except SpanProfiles which also
// needs tracing enabled.
type ProfilingConfig struct {
	Enabled              bool     `mapstructure:"enabled"`
	ServerAddress        string   `mapstructure:"server_address"`
	ApplicationName      string   `mapstructure:"application_name"`
	BasicAuthUser        string   `mapstructure:"basic_auth_user"`
	BasicAuthPassword    string   `mapstructure:"basic_auth_password"`
	ProfileTypes         []string `mapstructure:"profile_types"`
	MutexProfileFraction int      `mapstructure:"mutex_profile_fraction"`
	BlockProfileRate     int      `mapstructure:"block_profile_rate"`
	DisableGCRuns        bool     `mapstructure:"disable_gc_runs"`
	SpanProfiles         bool     `mapstructure:"span_profiles"`
}

// StorageConfig points at the S3-compatible bucket that receives payment
// proofs. Endpoint is empty for AWS and set for MinIO or R2.
type StorageConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Endpoint          string        `mapstructure:"endpoint"`
	Region            string        `mapstructure:"region"`
	Bucket            string        `mapstructure:"bucket"`
	AccessKeyID       string        `mapstructure:"access_key_id"`
	SecretAccessKey   string        `mapstructure:"secret_access_key"`
	UsePathStyle      bool          `mapstructure:"use_path_style"`
	PublicBaseURL     string        `mapstructure:"public_base_url"`
	UploadURLExpiry   time.Duration `mapstructure:"upload_url_expiry"`
	DownloadURLExpiry time.Duration `mapstructure:"download_url_expiry"`
	MaxProofSize      int64         `mapstructure:"max_proof_size"`
}

type BillingConfig struct {
	FreePlanName      string        `mapstructure:"free_plan_name"`
	MonthlyPeriodDays int           `mapstructure:"monthly_period_days"`
	YearlyPeriodDays  int           `mapstructure:"yearly_period_days"`
	PlanCacheTTL      time.Duration `mapstructure:"plan_cache_ttl"`
}

// defaults lists every key Load understands. A key must be registered here
// for an environment variable to override it.
var defaults = map[string]any{
	"app.name": "event-saas",
	"app.env":  "development",
	"app.port": "8000",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "event_saas",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.access_token_expiration":  time.Hour,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.issuer":                   "event-saas",
	"jwt.max_refresh_count":        10,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":             15 * time.Second,
	"http.write_timeout":            15 * time.Second,
	"http.idle_timeout":             time.Minute,
	"http.shutdown_timeout":         30 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            10 << 20,
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_enabled":  false,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{},
	"http.cors_allow_methods":       []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers":       []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":          []string{},
	"http.swagger_enabled":          false,
	"http.swagger_allowed_ips":      []string{},

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "event-saas",
	"telemetry.insecure":                false,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_export_interval": time.Minute,
	"telemetry.logs_enabled":            false,
	"telemetry.logs_level":              "info",
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,

	"telemetry.profiling.enabled":                false,
	"telemetry.profiling.server_address":         "http://localhost:4040",
	"telemetry.profiling.application_name":       "event-saas",
	"telemetry.profiling.profile_types":          []string{"cpu", "alloc_objects", "alloc_space", "inuse_objects", "inuse_space", "goroutines"},
	"telemetry.profiling.mutex_profile_fraction": 5,
	"telemetry.profiling.block_profile_rate":     5,
	"telemetry.profiling.disable_gc_runs":        false,
	"telemetry.profiling.span_profiles":          false,

	"storage.enabled":             false,
	"storage.endpoint":            "",
	"storage.region":              "us-east-1",
	"storage.bucket":              "",
	"storage.access_key_id":       "",
	"storage.secret_access_key":   "",
	"storage.use_path_style":      false,
	"storage.public_base_url":     "",
	"storage.upload_url_expiry":   15 * time.Minute,
	"storage.download_url_expiry": time.Hour,
	"storage.max_proof_size":      5 << 20,

	"billing.free_plan_name":      "free",
	"billing.monthly_period_days": 30,
	"billing.yearly_period_days":  365,
	"billing.plan_cache_ttl":      10 * time.Minute,
}

// Load resolves the configuration. Later sources win:
// built-in defaults, config.toml, .env files, then EVENTSAAS_* variables.
func Load() (*Config, error) {
	// .env only fills variables that are not already set
	for _, envFile := range []string{".env", "../.env"} {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		return errors.New("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		return errors.New("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns)
	}

	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %g", r)
	}
	if p := c.Telemetry.Profiling; p.Enabled && (p.ServerAddress == "" || p.ApplicationName == "") {
		return errors.New("telemetry.profiling.server_address and application_name are required when profiling is enabled")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return errors.New("storage.bucket is required when storage is enabled")
	}
	if c.Billing.MonthlyPeriodDays <= 0 || c.Billing.YearlyPeriodDays <= 0 {
		return errors.New("billing period lengths must be positive")
	}

	if c.IsProduction() {
		return c.validateProduction()
	}
	return nil
}

// validateProduction refuses settings that are only acceptable on a laptop
func (c *Config) validateProduction() error {
	switch {
	case c.JWT.Secret == "":
		return errors.New("jwt.secret is required in production")
	case len(c.JWT.Secret) < 32:
		return errors.New("jwt.secret must be at least 32 characters in production")
	case c.Database.Password == "":
		return errors.New("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return errors.New("database.sslmode cannot be 'disable' in production")
	case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
		return errors.New("http.cors_allow_origins cannot be '*' in production")
	case c.Telemetry.DBLogFullSQL:
		return errors.New("telemetry.db_log_full_sql must be false in production")
	case c.HTTP.SwaggerEnabled && len(c.HTTP.SwaggerAllowedIPs) == 0:
		return errors.New("http.swagger_allowed_ips must be set when swagger is enabled in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Periods returns the subscription period lengths
func (b BillingConfig) Periods() (monthly, yearly time.Duration) {
	day := 24 * time.Hour
	return time.Duration(b.MonthlyPeriodDays) * day, time.Duration(b.YearlyPeriodDays) * day
}

// DSN renders a postgres:// URL with the credentials escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
