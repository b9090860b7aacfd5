package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"

	CatalogSourceEmbedded = "embedded"
	CatalogSourcePostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	StoreBackend  string `toml:"store_backend"`
	CatalogSource string `toml:"catalog_source"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// http
	AllowedOrigins         []string `toml:"allowed_origins"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	CatalogCacheTTLSeconds int      `toml:"catalog_cache_ttl_seconds"`
	CatalogCacheSizeMB     int      `toml:"catalog_cache_size_mb"`
	MCPEnabled             bool     `toml:"mcp_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the section for env, with
// defaults filled in.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = StoreBackendMemory
	}
	if c.CatalogSource == "" {
		c.CatalogSource = CatalogSourceEmbedded
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.CatalogCacheTTLSeconds == 0 {
		c.CatalogCacheTTLSeconds = 3600
	}
	if c.CatalogCacheSizeMB <= 0 {
		c.CatalogCacheSizeMB = 10
	}
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreBackendMemory, StoreBackendPostgres, StoreBackendRedis:
	default:
		return fmt.Errorf("%w: unknown store_backend [%s]", ErrInvalidConfig, c.StoreBackend)
	}
	switch c.CatalogSource {
	case CatalogSourceEmbedded, CatalogSourcePostgres:
	default:
		return fmt.Errorf("%w: unknown catalog_source [%s]", ErrInvalidConfig, c.CatalogSource)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port [%d] out of range", ErrInvalidConfig, c.Port)
	}
	if c.RateLimitAllowedPerMin < 0 {
		return fmt.Errorf("%w: negative rate_limit_allowed_per_min", ErrInvalidConfig)
	}
	if c.UsesPostgres() && c.PostgresHost == "" {
		return fmt.Errorf("%w: postgres_host required", ErrInvalidConfig)
	}
	if c.UsesRedis() && c.RedisHost == "" {
		return fmt.Errorf("%w: redis_host required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) UsesPostgres() bool {
	return c.StoreBackend == StoreBackendPostgres || c.CatalogSource == CatalogSourcePostgres
}

// UsesRedis is true when redis is the record store or backs the rate limiter.
func (c *Config) UsesRedis() bool {
	return c.StoreBackend == StoreBackendRedis || c.RateLimitAllowedPerMin > 0
}
