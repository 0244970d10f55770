// Package config loads runtime configuration for the users cache CLI and
// HTTP server.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional dotenv file (-e / -env-file, default ".env") exported into
//     the process environment without overriding existing variables.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Environment variables prefixed with MCCASE_ (see parseEnv). The legacy
//     NEXT_PUBLIC_API_BASE_URL is accepted for the base URL.
//  5. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote users API
//	-s string   storage driver
//	-d string   storage DSN
//	-l string   HTTP listen address
//	-t int      cache TTL (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "5m" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://jsonplaceholder.typicode.com",
//	  "cache_ttl": "5m",
//	  "storage_driver": "redis",
//	  "redis_addr": "127.0.0.1:6379"
//	}
package config
