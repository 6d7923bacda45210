// Package cli implements the tabgroup command-line interface.
//
// Commands: status, config get|set|show, models, test, group, migrate,
// version. Every command wires the same application object: JSON-file
// backed synced and local stores, an encryption engine keyed from the OS
// keyring, and the secure store layered on top. The idempotent storage
// migration runs on startup so every command sees the current layout.
//
// Exit codes: 0 success, 2 usage error, 3 authentication or missing
// configuration, 4 runtime failure.
package cli
