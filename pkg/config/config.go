package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the runtime settings of the dataquery server.
type Config struct {
	Port            string
	DBPath          string
	CatalogFile     string
	DefaultLanguage string
	InitSQL         string

	// RateLimit is the number of validation requests accepted per second. Zero disables limiting.
	RateLimit float64

	// DryRunMutations controls whether INSERT, UPDATE and DELETE statements are dry-run
	// inside a rolled-back transaction. When false they are compiled but not executed.
	DryRunMutations bool

	LogVerbose bool
}

// LookupFunc resolves an environment variable. It has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from the given variable lookup, applying defaults for unset keys.
func FromLookup(lookup LookupFunc) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := &Config{
		Port:            get(EnvPort, DefaultPort),
		DBPath:          get(EnvDBPath, DefaultDBPath),
		CatalogFile:     get(EnvCatalogFile, ""),
		DefaultLanguage: get(EnvDefaultLanguage, DefaultLanguage),
		InitSQL:         get(EnvInitSQL, ""),
		DryRunMutations: true,
	}

	if raw := get(EnvRateLimit, ""); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvRateLimit, raw, err)
		}
		if rps < 0 {
			return nil, fmt.Errorf("invalid %s %q: must not be negative", EnvRateLimit, raw)
		}
		cfg.RateLimit = rps
	}

	var err error
	if cfg.DryRunMutations, err = parseBool(get(EnvDryRunMutations, ""), true); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvDryRunMutations, err)
	}
	if cfg.LogVerbose, err = parseBool(get(EnvLogVerbose, ""), false); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvLogVerbose, err)
	}

	return cfg, nil
}

func parseBool(raw string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}
