// Package config provides configuration and path management for the
// dashpulse report pipeline.
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. An optional YAML configuration file
//	3. Struct tag defaults (lowest priority)
//
// All environment variables follow the pattern DASH_* for namespacing:
//
//	DASH_REPORT_TOP_LOCATIONS=15
//	DASH_LOGGING_LEVEL=debug
//	DASH_LOGGING_FORMAT=text
//
// The package also provides centralized path management through the Paths
// type, which resolves all file system paths relative to the executable
// location:
//
//	paths, err := config.GetPaths()
package config
