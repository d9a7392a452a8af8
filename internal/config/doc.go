// Package config loads, normalizes, and validates avifwrap configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the AVIFWRAP_ROOT environment fallback for the
// encoder runtimes directory. Always obtain settings through this package so
// downstream code receives absolute paths and clear validation errors.
package config
