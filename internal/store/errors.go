package store

import "errors"

var (
	// ErrImageMissing is returned when a detection references an image id
	// that has not been recorded.
	ErrImageMissing = errors.New("referenced image not found")

	// ErrDetectionExists is returned when a detection already exists for the
	// referenced image. Expected steady-state for a tail log that is re-read
	// every tick, not a failure.
	ErrDetectionExists = errors.New("detection already recorded for image")
)
