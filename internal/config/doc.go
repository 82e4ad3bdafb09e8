// Package config loads, normalizes, and validates traceplot configuration data.
//
// It supplies repository defaults that mirror the command-line defaults,
// expands user paths (including tilde shortcuts), reads TOML files, and honours
// the TRACEPLOT_KST_BINARY environment override. Command-line flags are layered
// on top by the CLI; this package only knows about the file and the defaults.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
