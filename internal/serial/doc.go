// Package serial resolves the hardware identifier that iot-cache uses as
// its encryption passphrase.
//
// A Source reads one platform-provided identifier without spawning a
// shell: sysfs/DMI files on Linux, the kern.uuid sysctl on macOS and the
// MachineGuid registry value on Windows. Each platform contributes its
// sources from a build-tagged file, so supporting a new platform means
// adding a file rather than another branch.
//
// Callers depend on the Resolver interface. NewCached wraps a Source and
// remembers its result for the lifetime of the process only; the value is
// never persisted, because the environment (containers, VMs) can change
// between invocations. Static is a fixed Resolver for tests.
//
// Resolution never falls back to a placeholder. An unsupported platform,
// an unreadable file or an empty value all produce ErrSerialUnavailable,
// so nothing is ever encrypted under a guessable key.
package serial
