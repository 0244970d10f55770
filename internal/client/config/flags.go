package config

import (
	"flag"
	"os"
	"time"

	"github.com/AliKaner/mc-case/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the remote users API
//	-s string   storage driver (sqlite, postgres, redis, s3, memory)
//	-d string   storage DSN (file path for sqlite, URL for postgres)
//	-l string   listen address of the HTTP server
//	-t int      cache TTL in seconds
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the users API")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "HTTP listen address")
	ttl := fs.Int("t", int(cfg.CacheTTL.Seconds()), "cache TTL (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CacheTTL = time.Duration(*ttl) * time.Second
}
