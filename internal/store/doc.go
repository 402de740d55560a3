// Package store persists telemetry artifacts in SQLite and is the single
// source of truth for dedup and cross-reference decisions.
//
// The Store owns the write path: images, sensor readings, host stats,
// detections with their objects, and the audit log. Multi-row sequences
// (image + audit, detection + objects + audit) run inside one transaction so
// partial rows are never visible. Existence checks for detection references
// happen inside the same transaction that inserts, preserving the
// at-most-one-detection-per-image invariant under concurrent writers.
//
// Schema changes bump the version in schema.go; a mismatched database is
// rejected at open rather than migrated in place.
package store
