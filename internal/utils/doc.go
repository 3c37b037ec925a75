// Package utils provides small host and terminal helpers for iot-cache.
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//   - HostAnnotation: hostname sanitized for the ":<host>" record suffix
//
// # Input Utilities
//
//   - ReadSecret: prompts for a value without echo (golang.org/x/term)
//   - ReadStdin: reads a piped value from standard input
//   - IsTerminal: reports whether stdin is a terminal
package utils
