// Package ingest drains the watched drop locations into the store.
//
// Each tick scans camera frames, telemetry JSON files, and the detection
// tail log, classifies every artifact, and persists it with its audit entry.
// Artifact handling is at-most-once: files that persist are remembered in a
// per-run cache, while the store's natural keys (image path, one detection
// per image) make a restart with an empty cache safe.
//
// Outcomes are values, not control flow: every artifact yields a Result and
// failures of one artifact never stop the tick. Only store connectivity loss
// aborts a tick, since nothing can progress without the store.
package ingest
