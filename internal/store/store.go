package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/neo-th/iot-cache/internal/utils"
)

// State classifies a path before any entry operation touches it.
type State int

const (
	StateMissing State = iota
	StateInvalid
	StateValid
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Inspect reports whether path is missing, invalid or a valid store. The
// error explains a non-valid state and is nil for StateValid.
func Inspect(path string) (State, error) {
	_, err := Load(path)
	switch {
	case err == nil:
		return StateValid, nil
	case errors.Is(err, kerrors.ErrStoreNotFound):
		return StateMissing, err
	default:
		return StateInvalid, err
	}
}

// IsValid reports whether path holds a tagged store. It never fails.
func IsValid(path string) bool {
	state, _ := Inspect(path)
	return state == StateValid
}

// Create writes a new, empty store. It fails with ErrAlreadyExists if
// anything is present at path, tagged or not.
func Create(path string) error {
	data, err := Encode(NewDocument())
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", path, kerrors.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Cipher turns plaintext into a self-contained blob and back.
type Cipher interface {
	Seal(plaintext []byte) (string, error)
	Open(blob string) ([]byte, error)
}

// Manager performs the entry operations that need encryption.
type Manager struct {
	cipher   Cipher
	hostname func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithHostname overrides how the origin host annotation is obtained.
// Returning "" stores the record without annotation.
func WithHostname(fn func() string) Option {
	return func(m *Manager) {
		m.hostname = fn
	}
}

// NewManager returns a Manager sealing values with c.
func NewManager(c Cipher, opts ...Option) *Manager {
	m := &Manager{
		cipher:   c,
		hostname: utils.HostAnnotation,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Put encrypts value and stores it under key, replacing any previous
// record. It reports whether a record was replaced.
func (m *Manager) Put(path, key string, value []byte) (bool, error) {
	if key == "" {
		return false, kerrors.ErrEmptyKey
	}

	doc, err := Load(path)
	if err != nil {
		return false, err
	}

	blob, err := m.cipher.Seal(value)
	if err != nil {
		return false, fmt.Errorf("encrypting %s: %w", key, err)
	}

	_, replaced := doc.Data[key]
	doc.Data[key] = Record{Blob: blob, Host: m.hostname()}.String()

	if err := Save(path, doc); err != nil {
		return false, err
	}
	return replaced, nil
}

// Get decrypts the value stored under key with the current machine's serial.
func (m *Manager) Get(path, key string) ([]byte, error) {
	_, plaintext, err := m.Read(path, key)
	return plaintext, err
}

// Read returns the record for key together with its plaintext, both taken
// from a single load of the store.
func (m *Manager) Read(path, key string) (Record, []byte, error) {
	record, err := Lookup(path, key)
	if err != nil {
		return Record{}, nil, err
	}

	plaintext, err := m.cipher.Open(record.Blob)
	if err != nil {
		return Record{}, nil, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return record, plaintext, nil
}

// Lookup returns the raw record for key without decrypting it.
func Lookup(path, key string) (Record, error) {
	if key == "" {
		return Record{}, kerrors.ErrEmptyKey
	}

	doc, err := Load(path)
	if err != nil {
		return Record{}, err
	}

	value, ok := doc.Data[key]
	if !ok {
		return Record{}, fmt.Errorf("%s in %s: %w", key, path, kerrors.ErrKeyNotFound)
	}
	return ParseRecord(value), nil
}

// DeleteEntry removes key and rewrites the store.
func DeleteEntry(path, key string) error {
	if key == "" {
		return kerrors.ErrEmptyKey
	}

	doc, err := Load(path)
	if err != nil {
		return err
	}

	if _, ok := doc.Data[key]; !ok {
		return fmt.Errorf("%s in %s: %w", key, path, kerrors.ErrKeyNotFound)
	}
	delete(doc.Data, key)

	return Save(path, doc)
}

// DeleteStore removes the store file after confirming it is a valid store.
func DeleteStore(path string) error {
	state, err := Inspect(path)
	if state != StateValid {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// Entry is a key with its record, as listed without decryption.
type Entry struct {
	Key string
	Record
}

// Entries lists the store's records in key order.
func Entries(path string) ([]Entry, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc.Data))
	for _, k := range doc.Keys() {
		entries = append(entries, Entry{Key: k, Record: ParseRecord(doc.Data[k])})
	}
	return entries, nil
}

// Snapshot returns a copy of the stored values, still encrypted, for export.
func Snapshot(path string) (map[string]string, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]string, len(doc.Data))
	for k, v := range doc.Data {
		snapshot[k] = v
	}
	return snapshot, nil
}
