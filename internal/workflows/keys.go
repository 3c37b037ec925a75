package workflows

import (
	"context"

	"github.com/neo-th/iot-cache/internal/audit"
	"github.com/neo-th/iot-cache/internal/configs"
	"github.com/neo-th/iot-cache/internal/store"
)

// CreateKeyOptions configures the create-key workflow.
type CreateKeyOptions struct {
	Path  string
	Key   string
	Value []byte
}

// CreateKeyResult contains the outcome of a create-key operation.
type CreateKeyResult struct {
	Path string
	Key  string

	// Replaced is true when an existing record was overwritten.
	Replaced bool
}

// CreateKey encrypts a value with this device's serial and stores it.
//
// Returns ErrInvalidStore if the file is not a valid store (matching
// ErrStoreNotFound too when it is missing), ErrEmptyKey for an empty key,
// and ErrSerialUnavailable if the hardware serial cannot be read.
func CreateKey(ctx context.Context, opts CreateKeyOptions) (*CreateKeyResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpPut)
	entry.Store = opts.Path
	entry.Key = opts.Key

	replaced, err := putValue(config, opts)
	record(config, entry, err)
	if err != nil {
		return nil, err
	}

	return &CreateKeyResult{Path: opts.Path, Key: opts.Key, Replaced: replaced}, nil
}

func putValue(config *configs.Config, opts CreateKeyOptions) (bool, error) {
	manager, err := newManager(config)
	if err != nil {
		return false, err
	}
	return manager.Put(opts.Path, opts.Key, opts.Value)
}

// ViewKeyOptions configures the view-key workflow.
type ViewKeyOptions struct {
	Path string
	Key  string
}

// ViewKeyResult contains the outcome of a view-key operation.
type ViewKeyResult struct {
	Key   string
	Value []byte

	// Host is the advisory origin annotation of the record.
	Host string
}

// ViewKey decrypts one value with this device's serial.
//
// Returns ErrKeyNotFound if the key is absent, ErrAuthenticationFailure if
// the record was written on another device or altered, and ErrMalformedBlob
// if the record is not a valid blob.
func ViewKey(ctx context.Context, opts ViewKeyOptions) (*ViewKeyResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpView)
	entry.Store = opts.Path
	entry.Key = opts.Key

	result, err := viewValue(config, opts)
	record(config, entry, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func viewValue(config *configs.Config, opts ViewKeyOptions) (*ViewKeyResult, error) {
	manager, err := newManager(config)
	if err != nil {
		return nil, err
	}

	rec, value, err := manager.Read(opts.Path, opts.Key)
	if err != nil {
		return nil, err
	}

	return &ViewKeyResult{Key: opts.Key, Value: value, Host: rec.Host}, nil
}

// DeleteKeyOptions configures the delete-key workflow.
type DeleteKeyOptions struct {
	Path string
	Key  string
}

// DeleteKeyResult contains the outcome of a delete-key operation.
type DeleteKeyResult struct {
	Path string
	Key  string
}

// DeleteKey removes one entry. No decryption is needed.
func DeleteKey(ctx context.Context, opts DeleteKeyOptions) (*DeleteKeyResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpDeleteKey)
	entry.Store = opts.Path
	entry.Key = opts.Key

	err = store.DeleteEntry(opts.Path, opts.Key)
	record(config, entry, err)
	if err != nil {
		return nil, err
	}

	return &DeleteKeyResult{Path: opts.Path, Key: opts.Key}, nil
}

// ListKeysOptions configures the list-keys workflow.
type ListKeysOptions struct {
	Path string
}

// ListKeysResult contains the outcome of a list-keys operation.
type ListKeysResult struct {
	Entries []store.Entry
}

// ListKeys lists key names and host annotations without decrypting.
func ListKeys(ctx context.Context, opts ListKeysOptions) (*ListKeysResult, error) {
	entries, err := store.Entries(opts.Path)
	if err != nil {
		return nil, err
	}
	return &ListKeysResult{Entries: entries}, nil
}
