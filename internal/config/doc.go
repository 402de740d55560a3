// Package config loads and validates scribe's TOML configuration.
//
// Configuration describes the two watched drop locations, the ingest
// pipeline's timing and artifact naming, the optional host-stats producer,
// and log output. Paths support ~ expansion. Defaults are applied before the
// file is parsed so a partial config is always usable.
package config
