package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PrefixedVariables(t *testing.T) {
	t.Setenv("MCCASE_STORAGE_DRIVER", "postgres")
	t.Setenv("MCCASE_STORAGE_DSN", "postgres://u:p@localhost/db")
	t.Setenv("MCCASE_CACHE_TTL", "90s")
	t.Setenv("MCCASE_REDIS_DB", "2")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.StorageDSN)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, ":8080", cfg.ListenAddr, "unset variables keep earlier values")
}

func TestParseEnv_LegacyBaseURL(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_API_BASE_URL", "http://legacy.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	assert.Equal(t, "http://legacy.example", cfg.APIBaseURL)

	t.Setenv("MCCASE_API_BASE_URL", "http://prefixed.example")
	parseEnv(cfg)
	assert.Equal(t, "http://prefixed.example", cfg.APIBaseURL)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	t.Setenv("MCCASE_DEFAULT_PAGE_SIZE", "ten")

	require.Panics(t, func() { parseEnv(&Config{}) })
}

func TestLoadDotEnv_ExportsWithoutOverriding(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MCCASE_LISTEN_ADDR=:7070\nMCCASE_LOG_LEVEL=debug\n"), 0o600))

	t.Setenv("MCCASE_LOG_LEVEL", "warn")
	// registers cleanup for the variable the file introduces
	t.Setenv("MCCASE_LISTEN_ADDR", "")
	require.NoError(t, os.Unsetenv("MCCASE_LISTEN_ADDR"))

	os.Args = []string{"testbin", "-env-file", path}
	loadDotEnv()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-e", filepath.Join(t.TempDir(), "absent.env")}

	require.NotPanics(t, loadDotEnv)
}
