// Package configs manages the iot-cache user configuration and the
// per-user paths the CLI writes to.
//
// Configuration is optional and stored in TOML format at
// <UserConfigDir>/iot-cache/config.toml. A missing file means defaults.
//
// # Sections
//
//   - serial: which hardware identifier source derives the store key
//   - redis: connection defaults for redis-sync
//   - audit: whether store operations are recorded
//
// Command line flags always win over the file.
//
// # Settings
//
// UserSettings is initialized at startup with the config file path and
// the data directory (XDG_DATA_HOME, falling back to ~/.local/share)
// where the audit log lives. Tests may point both at a temp dir.
package configs
