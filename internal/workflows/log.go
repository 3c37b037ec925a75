package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/neo-th/iot-cache/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return, most recent kept.
	// 0 means no limit.
	Limit int

	// Store filters entries by store path.
	Store string

	// Operations filters entries by operation names (comma-separated).
	Operations string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Path is the audit log that was read.
	Path string

	// Entries are the filtered audit log entries, oldest first.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit trail. A missing log yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	logPath := audit.LogPath()

	entries, err := audit.ReadEntries(logPath)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{
		Path:                     logPath,
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Store != "" {
		filtered = filterByStore(filtered, opts.Store)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}

	result.Entries = filtered
	return result, nil
}

// filterByStore matches on the cleaned path so "./s.json" finds "s.json".
func filterByStore(entries []audit.Entry, path string) []audit.Entry {
	want := filepath.Clean(path)

	var result []audit.Entry
	for _, e := range entries {
		if e.Store != "" && filepath.Clean(e.Store) == want {
			result = append(result, e)
		}
	}
	return result
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := audit.Entry{Timestamp: ts}.Time()
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format(time.DateTime)
}

// FormatDetails summarizes what an entry touched.
func FormatDetails(e audit.Entry) string {
	var details string
	switch e.Operation {
	case audit.OpPut, audit.OpView, audit.OpDeleteKey:
		details = fmt.Sprintf("%s in %s", e.Key, e.Store)
	case audit.OpRedisSync:
		details = fmt.Sprintf("%s -> %s (%d written, %d skipped, %d failed)",
			e.Store, e.Target, e.Written, e.Skipped, e.Failed)
	default:
		details = e.Store
	}

	if !e.OK && e.Error != "" {
		details += ": " + e.Error
	}
	return details
}
