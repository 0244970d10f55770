package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://jsonplaceholder.typicode.com", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Minute, c.CacheTTL)
	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, "users_cache.db", c.StorageDSN)
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, 10, c.DefaultPageSize)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-e", "does-not-exist.env"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults ok", mutate: func(c *Config) {}},
		{name: "memory needs nothing", mutate: func(c *Config) { c.StorageDriver = DriverMemory; c.StorageDSN = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "bolt" }, wantErr: `unknown storage driver "bolt"`},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.StorageDSN = "" }, wantErr: "requires a DSN"},
		{name: "redis without addr", mutate: func(c *Config) { c.StorageDriver = DriverRedis; c.RedisAddr = "" }, wantErr: "requires an address"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.StorageDriver = DriverS3 }, wantErr: "requires a bucket"},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTL = 0 }, wantErr: "cache ttl must be positive"},
		{name: "zero page size", mutate: func(c *Config) { c.DefaultPageSize = 0 }, wantErr: "default page size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
