// Package export pushes a store's records to a remote cache.
//
// The core never decrypts for export: values leave exactly as they are
// stored (ciphertext blob plus host annotation), under the same key names.
// A Sink decides per key whether to write. By default existing remote keys
// are skipped; with overwrite every key is written.
//
// Keys are pushed one by one in sorted order and each is independent, so
// one failure does not stop the rest. The Report keeps a result per key;
// Report.Err joins the individual failures, each wrapping
// ErrSinkWriteFailure and naming its key.
//
// RedisSink is the Sink used by the redis-sync command. Timeouts are the
// sink's concern and are configured on the client.
package export
