// Package common provides shared constants, sentinel errors, logging,
// and filesystem utilities used throughout the OpenConnect session manager.
//
// The package holds the cross-cutting concerns of the tool:
//
//   - Constants: well-known paths, file names, timeouts, and defaults
//   - Errors: sentinel errors checked with errors.Is across packages
//   - Logger: leveled logging with optional file output and rotation
//   - Utils: config/data directory resolution and path helpers
//
// Log output goes to stderr so that the machine-readable status lines
// printed on stdout stay clean for scripting.
package common
