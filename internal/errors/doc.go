// Package errors provides typed error values for iot-cache.
//
// Every failure the core can produce maps onto one of the sentinel values
// below, so callers handle conditions with errors.Is() rather than string
// matching. The cmd layer decides how each one is shown and which exit
// status it produces; library packages never print.
//
// # Error Categories
//
//   - Serial errors: the hardware identifier could not be read (ErrSerialUnavailable)
//   - Crypto errors: a blob cannot be decoded or does not authenticate
//     (ErrMalformedBlob, ErrAuthenticationFailure)
//   - Store errors: the tagged document is missing, invalid, or lacks a key
//     (ErrStoreNotFound, ErrInvalidStore, ErrAlreadyExists, ErrKeyNotFound)
//   - Export errors: the remote sink rejected a write (ErrSinkWriteFailure)
//
// # Usage
//
// Wrap errors with the store path or key for context:
//
//	return fmt.Errorf("reading %s from %s: %w", key, path, errors.ErrKeyNotFound)
//
// A store file that does not exist matches both ErrStoreNotFound and
// ErrInvalidStore, so mutating callers that only care about validity can
// check the latter while the CLI can still say "does not exist".
package errors
