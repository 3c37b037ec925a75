package workflows

import (
	"context"
	"slices"

	"github.com/neo-th/iot-cache/internal/audit"
	"github.com/neo-th/iot-cache/internal/store"
)

// CreateStoreOptions configures the create-store workflow.
type CreateStoreOptions struct {
	// Path is the store file to create.
	Path string
}

// CreateStoreResult contains the outcome of a create-store operation.
type CreateStoreResult struct {
	Path string
}

// CreateStore writes an empty tagged store.
//
// Returns ErrAlreadyExists if the file is present, whatever its content.
func CreateStore(ctx context.Context, opts CreateStoreOptions) (*CreateStoreResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpCreateStore)
	entry.Store = opts.Path

	err = store.Create(opts.Path)
	record(config, entry, err)
	if err != nil {
		return nil, err
	}

	return &CreateStoreResult{Path: opts.Path}, nil
}

// DeleteStoreOptions configures the delete-store workflow.
type DeleteStoreOptions struct {
	Path string
}

// DeleteStoreResult contains the outcome of a delete-store operation.
type DeleteStoreResult struct {
	Path string
}

// DeleteStore removes a store file, refusing anything that is not a valid store.
//
// Returns an error matching both ErrStoreNotFound and ErrInvalidStore if the
// file does not exist, and ErrInvalidStore if it is not a tagged store.
func DeleteStore(ctx context.Context, opts DeleteStoreOptions) (*DeleteStoreResult, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry(audit.OpDeleteStore)
	entry.Store = opts.Path

	err = store.DeleteStore(opts.Path)
	record(config, entry, err)
	if err != nil {
		return nil, err
	}

	return &DeleteStoreResult{Path: opts.Path}, nil
}

// ListStoresOptions configures the store-list workflow.
type ListStoresOptions struct {
	// Dir is the directory to scan. Empty means the working directory.
	Dir string

	// Pattern is a doublestar glob relative to Dir. Empty means *.json.
	Pattern string
}

// ListStoresResult contains the outcome of a store-list operation.
type ListStoresResult struct {
	// Stores are the valid store files, sorted.
	Stores []string

	// Candidates is how many files matched the pattern before validation.
	Candidates int
}

// ListStores finds valid stores in a directory. Malformed or untagged files
// are skipped, not reported as errors.
func ListStores(ctx context.Context, opts ListStoresOptions) (*ListStoresResult, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = store.DefaultPattern
	}

	candidates, err := store.Candidates(opts.Dir, pattern)
	if err != nil {
		return nil, err
	}

	return &ListStoresResult{
		Stores:     slices.Collect(store.ListValid(opts.Dir, pattern)),
		Candidates: len(candidates),
	}, nil
}
