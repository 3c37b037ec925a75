// Package audit records store operations in an append-only trail.
//
// Every operation that touches a store (create, put, view, delete,
// redis-sync) appends one entry, successful or not. The trail answers
// "which process read or changed this store, and when".
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	<data dir>/iot-cache/audit.jsonl
//
// Each entry contains:
//   - A random entry ID (UUID)
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operation name
//   - OS user and hostname
//   - Store path and key, when relevant
//   - Whether the operation succeeded, and its error if not
//
// Values and ciphertext are never logged.
//
// # Usage
//
//	entry := audit.NewEntry(audit.OpPut)
//	entry.Store = path
//	entry.Key = key
//	audit.Log(entry.Finish(err))
//
// # Failure Handling
//
// Audit logging is best-effort. If writing fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
