// Package scanner lists candidate artifact files in a watched drop location.
//
// Scanning is a pure read: the scanner never touches the store and never
// mutates the filesystem. Results are sorted lexicographically so processing
// order within a tick is deterministic and audit output is reproducible for
// identical directory contents.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// List returns the sorted filenames in dir that pass match and fail skip.
// Subdirectories are ignored. A transiently unreadable directory yields an
// empty result rather than an error; the next tick retries.
func List(dir string, match func(name string) bool, skip func(name string) bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if match != nil && !match(name) {
			continue
		}
		if skip != nil && skip(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasExtension returns a match predicate for a case-insensitive file
// extension such as ".jpg".
func HasExtension(ext string) func(string) bool {
	lowered := strings.ToLower(ext)
	return func(name string) bool {
		return strings.ToLower(filepath.Ext(name)) == lowered
	}
}
