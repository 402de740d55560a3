package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse marks artifacts whose contents could not be decoded.
	ErrParse = errors.New("parse error")
	// ErrTransientIO marks filesystem reads that may succeed on retry.
	ErrTransientIO = errors.New("transient io failure")
	// ErrStore marks persistence failures.
	ErrStore = errors.New("store failure")
)

// Wrap builds an error message that includes artifact context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, artifact string, err error) error {
	detail := buildDetail(operation, artifact)
	if marker == nil {
		marker = ErrTransientIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, artifact string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if artifact = strings.TrimSpace(artifact); artifact != "" {
		parts = append(parts, artifact)
	}
	if len(parts) == 0 {
		return "ingest failure"
	}
	return strings.Join(parts, ": ")
}
