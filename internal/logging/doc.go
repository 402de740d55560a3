// Package logging builds the slog loggers used across scribe.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Attr helpers and standardized field
// keys keep log lines consistent between the pipeline, store, and CLI.
package logging
