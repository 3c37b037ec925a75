package store

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects candidate store files.
const DefaultPattern = "*.json"

// Candidates returns the paths in dir matching pattern, sorted, without
// checking their content. Pattern is a doublestar glob relative to dir, so
// "**/*.json" searches subdirectories.
func Candidates(dir, pattern string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("matching %q in %s: %w", pattern, dir, err)
	}
	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return paths, nil
}

// ListValid yields the valid stores among Candidates(dir, pattern). Files
// are read one at a time as the sequence is consumed, and every range
// starts a fresh scan. Unreadable directories, malformed JSON and untagged
// documents are skipped rather than reported.
func ListValid(dir, pattern string) iter.Seq[string] {
	return func(yield func(string) bool) {
		paths, err := Candidates(dir, pattern)
		if err != nil {
			return
		}
		for _, path := range paths {
			if !IsValid(path) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}
