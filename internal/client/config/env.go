package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "MCCASE_"

// legacyEnv carries variable names kept for compatibility with existing
// deployments of the web front end.
type legacyEnv struct {
	APIBaseURL string `env:"NEXT_PUBLIC_API_BASE_URL"`
}

// parseEnv overlays Config with MCCASE_* environment variables. Unset
// variables keep the value from earlier layers. NEXT_PUBLIC_API_BASE_URL is
// honoured for the base URL unless MCCASE_API_BASE_URL is also set.
func parseEnv(cfg *Config) {
	var legacy legacyEnv
	if err := env.Parse(&legacy); err != nil {
		panic(err)
	}
	if legacy.APIBaseURL != "" {
		cfg.APIBaseURL = legacy.APIBaseURL
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
