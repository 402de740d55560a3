package journal_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scribe/internal/journal"
)

func TestAppendWritesTimestampedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	j := journal.New(path)

	at := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	if err := j.Append(at, "image frame_001.jpg recorded with id=1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := j.Append(at.Add(time.Second), "detection recorded for image id=1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0] != "[2025-06-05 12:00:00] image frame_001.jpg recorded with id=1" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
}
