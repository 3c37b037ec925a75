package errors

import "errors"

// Serial errors indicate the machine identity could not be determined.
var (
	// ErrSerialUnavailable indicates the platform is unsupported or the hardware serial could not be read.
	ErrSerialUnavailable = errors.New("hardware serial unavailable")
)

// Cryptographic errors indicate a stored value cannot be recovered.
var (
	// ErrMalformedBlob indicates the blob is not valid base64 or is shorter than the fixed header.
	ErrMalformedBlob = errors.New("malformed encrypted blob")

	// ErrAuthenticationFailure indicates the GCM tag did not verify (wrong serial, tampering, or truncation).
	ErrAuthenticationFailure = errors.New("authentication failed")
)

// Store errors indicate issues with a tagged store file or its entries.
var (
	// ErrInvalidStore indicates the file is not a tagged key store.
	ErrInvalidStore = errors.New("invalid key store file")

	// ErrStoreNotFound indicates the store file does not exist.
	ErrStoreNotFound = errors.New("key store does not exist")

	// ErrAlreadyExists indicates a store could not be created because the file is present.
	ErrAlreadyExists = errors.New("file already exists")

	// ErrKeyNotFound indicates the key is absent from the store.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyKey indicates an empty key name was supplied.
	ErrEmptyKey = errors.New("key must not be empty")
)

// Export errors indicate issues pushing entries to a remote cache.
var (
	// ErrSinkWriteFailure indicates the sink failed to store one or more keys.
	ErrSinkWriteFailure = errors.New("sink write failed")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the config file is malformed or holds unusable values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
