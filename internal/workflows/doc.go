// Package workflows provides high-level orchestration for iot-cache commands.
//
// Each workflow handles a single command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting. The cmd/
// package parses arguments, calls a workflow and formats its result.
//
// Workflows are also where the pieces are assembled:
//
//	config -> serial source -> cached resolver -> vault.Cipher -> store.Manager
//
// and where each store operation is recorded in the audit trail.
//
// # Available Workflows
//
//   - CreateStore, DeleteStore: manage store files
//   - CreateKey, ViewKey, DeleteKey: manage encrypted entries
//   - ListStores, ListKeys: inspect without decrypting
//   - RedisSync: export a store's encrypted values to redis
//   - Log: read the audit trail
//   - ShowConfig, InitConfig: inspect and create the config file
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the
// CLI layer can choose messages with errors.Is:
//
//	result, err := workflows.ViewKey(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailure) {
//	    // written on another device, or tampered with
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first
// parameter. Only RedisSync blocks on the network and honors it.
package workflows
