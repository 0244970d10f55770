package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-s", "memory", "-d", "x.db", "-l", ":9999", "-t", "60"},
			expected: &Config{APIBaseURL: "http://127.0.0.1:9090", StorageDriver: "memory", StorageDSN: "x.db", ListenAddr: ":9999", CacheTTL: time.Minute}},
		{name: "foreign flags ignored", args: []string{"cmd", "-c", "cfg.json", "-t", "1"},
			expected: &Config{CacheTTL: time.Second}},
		{name: "incorrect ttl", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
