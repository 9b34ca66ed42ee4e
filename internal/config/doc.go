// Package config loads, normalizes, and validates Lectern's TOML
// configuration.
//
// Load resolves the config path (explicit flag, ~/.config/lectern/config.toml,
// or ./lectern.toml), fills unset fields from repository defaults and
// environment variables for secrets, and expands ~ in path fields. Validate
// rejects configurations the pipeline cannot run with.
package config
