package classify

import "fmt"

// ParseError reports malformed content for a recognized artifact kind. The
// offending file stays unprocessed so a corrected version is retried on a
// later tick.
type ParseError struct {
	Kind Kind
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %s: %v", e.Kind, e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(kind Kind, file string, err error) error {
	return &ParseError{Kind: kind, File: file, Err: err}
}
