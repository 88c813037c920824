// Package session implements the core of the OpenConnect session manager.
//
// Connection state is represented entirely by a PID file on disk: the
// openconnect daemon writes it when it detaches, status reads it, and
// disconnect removes it once the process is confirmed dead. The package
// provides the pieces around this contract:
//
//   - Locate: resolve the openconnect binary (explicit path or PATH search)
//   - CheckPrivileges: verify root on a Unix-like host before mutating ops
//   - PIDFile: read/write/remove the shared PID file
//   - Runner: spawn, signal, and probe processes (swappable in tests)
//   - CredentialSource: username/password acquisition, keyring-aware
//   - Controller: the connect/disconnect/status state machine
//   - Profile/ProfileStore: named connection presets persisted as YAML
//
// The controller is synchronous and single-threaded. The only wait
// construct is disconnect's bounded liveness poll.
package session
