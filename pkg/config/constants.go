// Package config provides configuration constants and environment loading for the dataquery service.
package config

// HTTP surface.
const (
	ValidateRoute  = "/ajax/dataquery/validate"
	HealthRoute    = "/health"
	QueryParameter = "query"
	FormatParam    = "format"
)

// Report output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// DryRunRowLimit is the cardinality forced onto row-returning statements before the dry-run.
const DryRunRowLimit = 1

// Environment variable names.
const (
	EnvPort            = "PORT"
	EnvDBPath          = "DB_PATH"
	EnvCatalogFile     = "CATALOG_FILE"
	EnvDefaultLanguage = "DEFAULT_LANGUAGE"
	EnvRateLimit       = "RATE_LIMIT"
	EnvDryRunMutations = "DRY_RUN_MUTATIONS"
	EnvLogVerbose      = "LOG_VERBOSE"
	EnvInitSQL         = "INIT_SQL"
)

// Defaults applied when the matching environment variable is unset.
const (
	DefaultPort     = "8080"
	DefaultDBPath   = ":memory:"
	DefaultLanguage = "en"
)
