// Package config loads, normalizes, and validates titlesort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TITLESORT_LOG_LEVEL and NO_COLOR. Configuration only shapes the ambient
// behaviour of the tool (logging, lock placement, report rendering); the
// organizing rules themselves are fixed and never read from here.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
