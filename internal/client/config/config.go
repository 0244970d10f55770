package config

import (
	"fmt"
	"time"
)

// Storage drivers accepted by StorageDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Config holds runtime settings shared by the CLI and the HTTP server.
//
// Fields:
//   - APIBaseURL: root of the remote users API.
//   - RequestTimeout: per-request timeout of the HTTP transport.
//   - CacheTTL: how long a saved snapshot stays fresh.
//   - StorageDriver/StorageDSN: which key-value backend holds the cache.
//   - Redis*, S3*: backend specific connection settings.
//   - ListenAddr: address of the HTTP server.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	CacheTTL       time.Duration `env:"CACHE_TTL"`

	StorageDriver string `env:"STORAGE_DRIVER"`
	StorageDSN    string `env:"STORAGE_DSN"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	RedisPrefix   string `env:"REDIS_PREFIX"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Prefix    string `env:"S3_PREFIX"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	ListenAddr      string `env:"LISTEN_ADDR"`
	LogLevel        string `env:"LOG_LEVEL"`
	DefaultPageSize int    `env:"DEFAULT_PAGE_SIZE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://jsonplaceholder.typicode.com"
	c.RequestTimeout = 10 * time.Second
	c.CacheTTL = 5 * time.Minute
	c.StorageDriver = DriverSQLite
	c.StorageDSN = "users_cache.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "mccase:"
	c.S3Region = "us-east-1"
	c.S3Prefix = "users-cache/"
	c.ListenAddr = ":8080"
	c.LogLevel = "info"
	c.DefaultPageSize = 10
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverPostgres:
		if c.StorageDSN == "" {
			return fmt.Errorf("storage driver %q requires a DSN", c.StorageDriver)
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("storage driver %q requires an address", c.StorageDriver)
		}
	case DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("storage driver %q requires a bucket", c.StorageDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL)
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive, got %d", c.DefaultPageSize)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a .env file, JSON, environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
