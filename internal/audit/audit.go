package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/neo-th/iot-cache/internal/configs"
	"github.com/neo-th/iot-cache/internal/utils"
)

// Operation names.
const (
	OpCreateStore = "create-store"
	OpPut         = "create-key"
	OpView        = "view-key"
	OpDeleteKey   = "delete-key"
	OpDeleteStore = "delete-store"
	OpRedisSync   = "redis-sync"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	Operation string `json:"op"`
	User      string `json:"user,omitempty"`
	Host      string `json:"host,omitempty"`

	Store string `json:"store,omitempty"`
	Key   string `json:"key,omitempty"`

	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	// For redis-sync.
	Target  string `json:"target,omitempty"`
	Written int    `json:"written,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Failed  int    `json:"failed,omitempty"`
}

// NewEntry starts an entry for op with identity fields filled in.
func NewEntry(op string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Operation: op,
		Host:      utils.HostAnnotation(),
	}
	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}
	return entry
}

// Finish records the outcome of the operation.
func (e Entry) Finish(err error) Entry {
	e.OK = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	t, err := time.Parse(TimestampFormat, e.Timestamp)
	if err != nil {
		t, err = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t, err
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.UserSettings.AuditLogPath()
}

// Log appends an entry to the audit log at LogPath.
// Failures are ignored; operations must not fail because auditing did.
func Log(entry Entry) {
	_ = Append(LogPath(), entry)
}

// Append writes one entry to the log at path.
func Append(path string, entry Entry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}

// ReadEntries reads all entries from the log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
