// Package config loads server settings from an optional zoo.toml file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type DatabaseConfig struct {
	// URL selects the postgres store when set; otherwise Path names a sqlite file.
	URL                string
	Path               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnectRetries     int
	ConnectRetryDelay  time.Duration
	EnforceForeignKeys bool
	SlowQueryThreshold time.Duration
	Seed               bool
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type CacheConfig struct {
	RedisURL       string
	StatsTTL       time.Duration
	BreakerFails   int
	BreakerTimeout time.Duration
}

type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

// env names kept from the deployment the frontend was built against
var envBindings = map[string][]string{
	"app.env":                       {"ZOO_ENV", "NODE_ENV"},
	"app.port":                      {"PORT"},
	"database.url":                  {"DATABASE_URL"},
	"database.path":                 {"DATABASE_PATH"},
	"database.max_open_conns":       {"DB_MAX_OPEN_CONNS"},
	"database.max_idle_conns":       {"DB_MAX_IDLE_CONNS"},
	"database.conn_max_lifetime":    {"DB_CONN_MAX_LIFETIME"},
	"database.connect_retries":      {"DB_CONNECT_RETRIES"},
	"database.connect_retry_delay":  {"DB_CONNECT_RETRY_DELAY"},
	"database.enforce_foreign_keys": {"DB_ENFORCE_FOREIGN_KEYS"},
	"database.slow_query_threshold": {"DB_SLOW_QUERY_THRESHOLD"},
	"database.seed":                 {"DB_SEED"},
	"log.level":                     {"LOG_LEVEL"},
	"log.format":                    {"LOG_FORMAT"},
	"log.output":                    {"LOG_OUTPUT"},
	"cache.redis_url":               {"REDIS_URL"},
	"cache.stats_ttl":               {"CACHE_STATS_TTL"},
	"cache.breaker_fails":           {"CACHE_BREAKER_FAILS"},
	"cache.breaker_timeout":         {"CACHE_BREAKER_TIMEOUT"},
	"http.read_timeout":             {"HTTP_READ_TIMEOUT"},
	"http.write_timeout":            {"HTTP_WRITE_TIMEOUT"},
	"http.idle_timeout":             {"HTTP_IDLE_TIMEOUT"},
	"http.shutdown_timeout":         {"HTTP_SHUTDOWN_TIMEOUT"},
	"http.cors_allow_origins":       {"CORS_ALLOW_ORIGINS"},
}

// Load reads zoo.toml (if any) and applies environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("zoo")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/zoo")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  strings.ToLower(v.GetString("app.env")),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			URL:                v.GetString("database.url"),
			Path:               v.GetString("database.path"),
			MaxOpenConns:       v.GetInt("database.max_open_conns"),
			MaxIdleConns:       v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime:    v.GetDuration("database.conn_max_lifetime"),
			ConnectRetries:     v.GetInt("database.connect_retries"),
			ConnectRetryDelay:  v.GetDuration("database.connect_retry_delay"),
			EnforceForeignKeys: v.GetBool("database.enforce_foreign_keys"),
			SlowQueryThreshold: v.GetDuration("database.slow_query_threshold"),
			Seed:               v.GetBool("database.seed"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Cache: CacheConfig{
			RedisURL:       v.GetString("cache.redis_url"),
			StatsTTL:       v.GetDuration("cache.stats_ttl"),
			BreakerFails:   v.GetInt("cache.breaker_fails"),
			BreakerTimeout: v.GetDuration("cache.breaker_timeout"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			CORSAllowOrigins: splitList(v.GetStringSlice("http.cors_allow_origins")),
		},
	}

	applyEnvironmentDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("app.port", "3001")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.connect_retries", 10)
	v.SetDefault("database.connect_retry_delay", 5*time.Second)
	v.SetDefault("database.enforce_foreign_keys", false)
	v.SetDefault("database.slow_query_threshold", 200*time.Millisecond)
	v.SetDefault("database.seed", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("cache.stats_ttl", 30*time.Second)
	v.SetDefault("cache.breaker_fails", 5)
	v.SetDefault("cache.breaker_timeout", 30*time.Second)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.cors_allow_origins", []string{"*"})
}

// applyEnvironmentDefaults fills settings whose default depends on App.Env.
func applyEnvironmentDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		if cfg.IsProduction() {
			cfg.Database.Path = "/var/lib/zoo/zoo.db"
		} else {
			cfg.Database.Path = "zoo.db"
		}
	}
	if cfg.Log.Format == "" {
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
	}
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.App.Port); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.App.Port, err)
	}
	if c.Database.URL != "" {
		u, err := url.Parse(c.Database.URL)
		if err != nil {
			return fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("unsupported database url scheme %q", u.Scheme)
		}
	}
	if c.Database.MaxOpenConns <= 0 {
		return errors.New("database max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return errors.New("database max_idle_conns must be between 0 and max_open_conns")
	}
	if c.Database.ConnectRetries < 1 {
		return errors.New("database connect_retries must be at least 1")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == EnvProduction
}

func (c *Config) UsesPostgres() bool {
	return c.Database.URL != ""
}

// PostgresDSN returns the database URL with an sslmode chosen for the
// environment when the URL does not name one.
func (c *Config) PostgresDSN() string {
	return WithSSLMode(c.Database.URL, c.IsProduction())
}

func WithSSLMode(rawURL string, production bool) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get("sslmode") != "" {
		return rawURL
	}
	if production {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Config) Addr() string {
	return ":" + c.App.Port
}

// splitList accepts both a real list and a single comma separated string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
