// Package journal maintains the append-only human-readable audit file.
//
// Every processing attempt produces one line of the form
// "[2006-01-02 15:04:05] action". The file mirrors the audit_log table for
// operators who just want to tail a text file; durability lives in the
// store.
package journal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const lineTimeLayout = "2006-01-02 15:04:05"

// Journal appends timestamped action lines to a text file.
type Journal struct {
	mu   sync.Mutex
	path string
}

// New returns a journal writing to path. The file is created on first
// append.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Append writes one action line. Failures are returned, never fatal; the
// caller decides whether a missed journal line matters.
func (j *Journal) Append(at time.Time, action string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	line := fmt.Sprintf("[%s] %s\n", at.UTC().Format(lineTimeLayout), action)
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append journal line: %w", err)
	}
	return f.Close()
}
