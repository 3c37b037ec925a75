// Package store implements the tagged key store: a JSON document holding a
// sentinel tag and a map of keys to encrypted records.
//
// # File Format
//
//	{
//	    "__tag__": "--key-store--",
//	    "data": {
//	        "<key>": "<base64(nonce|salt|tag|ciphertext)>:<hostname>"
//	    }
//	}
//
// A file is a store iff it parses as a JSON object whose "__tag__" equals
// Tag. The tag is written once by Create and never touched by entry
// operations. Unknown top-level fields are carried through rewrites. The
// ":<hostname>" suffix records where a value was written; it is neither
// encrypted nor authenticated and nothing verifies it.
//
// # Validity
//
// Inspect reports one of three states: StateMissing, StateInvalid or
// StateValid. Every entry operation and DeleteStore require StateValid.
// A missing file fails with an error matching both ErrStoreNotFound and
// ErrInvalidStore; an unparseable or untagged file fails with
// ErrInvalidStore.
//
// # Concurrency
//
// Each mutation is a full read-modify-write of the file: read, parse,
// change in memory, serialize, overwrite in place. There is no locking and
// no atomic rename. Two processes writing the same store can lose an
// update, and a reader can observe a partially written file, which then
// reads as invalid. Callers that need more must serialize access
// themselves.
package store
