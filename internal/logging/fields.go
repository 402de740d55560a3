package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType is the standardized structured logging key for machine-readable event labels.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance on errors.
	FieldErrorHint = "error_hint"
	// FieldTickID is the standardized structured logging key for per-tick request identifiers.
	FieldTickID = "tick_id"
	// FieldArtifact is the standardized structured logging key for artifact filenames.
	FieldArtifact = "artifact"
)
