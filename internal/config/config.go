// Package config loads server configuration from CHARSHEET_* environment
// variables
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/charsheet-api/internal/errors"
)

// History backends
const (
	HistoryBackendRedis  = "redis"
	HistoryBackendSQLite = "sqlite"
)

// Config is the server configuration
type Config struct {
	Port            int           `env:"CHARSHEET_PORT"             envDefault:"50051"`
	ShutdownTimeout time.Duration `env:"CHARSHEET_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Redis   RedisConfig
	History HistoryConfig
	Log     LogConfig

	// CostTablePath optionally points at a YAML cost table overriding the
	// compiled one
	CostTablePath string `env:"CHARSHEET_COST_TABLE"`

	// OTelEndpoint enables tracing when set
	OTelEndpoint string `env:"CHARSHEET_OTEL_ENDPOINT"`
}

// RedisConfig selects the Redis deployment. More than one address means
// cluster mode.
type RedisConfig struct {
	Addrs      []string `env:"CHARSHEET_REDIS_ADDRS"       envDefault:"localhost:6379" envSeparator:","`
	Password   string   `env:"CHARSHEET_REDIS_PASSWORD"`
	DB         int      `env:"CHARSHEET_REDIS_DB"          envDefault:"0"`
	PoolSize   int      `env:"CHARSHEET_REDIS_POOL_SIZE"   envDefault:"10"`
	MaxRetries int      `env:"CHARSHEET_REDIS_MAX_RETRIES" envDefault:"3"`
	UseTLS     bool     `env:"CHARSHEET_REDIS_TLS"`
}

// HistoryConfig selects where history records are kept
type HistoryConfig struct {
	Backend    string `env:"CHARSHEET_HISTORY_BACKEND" envDefault:"redis"`
	SQLitePath string `env:"CHARSHEET_SQLITE_PATH"     envDefault:"charsheet-history.db"`
}

// LogConfig configures the slog handlers
type LogConfig struct {
	Level  string `env:"CHARSHEET_LOG_LEVEL"  envDefault:"INFO"`
	Format string `env:"CHARSHEET_LOG_FORMAT" envDefault:"text"`

	// File enables rotated file output next to stderr
	File           string `env:"CHARSHEET_LOG_FILE"`
	FileMaxSizeMB  int    `env:"CHARSHEET_LOG_FILE_MAX_SIZE_MB"  envDefault:"100"`
	FileMaxBackups int    `env:"CHARSHEET_LOG_FILE_MAX_BACKUPS"  envDefault:"3"`
	FileMaxAgeDays int    `env:"CHARSHEET_LOG_FILE_MAX_AGE_DAYS" envDefault:"28"`
}

// Load parses the environment into a validated Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("CHARSHEET_PORT", c.Port, 1, 65535, vb)
	if len(c.Redis.Addrs) == 0 {
		vb.RequiredField("CHARSHEET_REDIS_ADDRS")
	}
	errors.ValidateEnum("CHARSHEET_HISTORY_BACKEND", c.History.Backend,
		[]string{HistoryBackendRedis, HistoryBackendSQLite}, vb)
	if c.History.Backend == HistoryBackendSQLite {
		errors.ValidateRequired("CHARSHEET_SQLITE_PATH", c.History.SQLitePath, vb)
	}
	errors.ValidateEnum("CHARSHEET_LOG_FORMAT", c.Log.Format, []string{"text", "json"}, vb)
	if c.ShutdownTimeout <= 0 {
		vb.InvalidField("CHARSHEET_SHUTDOWN_TIMEOUT", "must be positive")
	}
	return vb.Build()
}
