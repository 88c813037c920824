package session

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PIDFile is a handle to the PID file shared with the openconnect daemon.
// The file is the sole representation of session state: openconnect writes
// it when daemonizing, and disconnect removes it on confirmed termination.
// No locking is performed; concurrent invocations against the same path are
// unsupported.
type PIDFile struct {
	path string
}

// NewPIDFile returns a handle for the given path.
func NewPIDFile(path string) PIDFile {
	return PIDFile{path: path}
}

// Path returns the file path, as passed to openconnect via --pid-file.
func (p PIDFile) Path() string {
	return p.path
}

// Read parses the file contents as a process id. A missing, empty, or
// unparsable file yields ok=false, never an error.
func (p PIDFile) Read() (pid int, ok bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Write creates the parent directory if needed and writes the id as text,
// replacing prior contents.
func (p PIDFile) Write(pid int) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.path, []byte(strconv.Itoa(pid)), 0644)
}

// Remove deletes the file. Removing an already-absent file is not an error.
func (p PIDFile) Remove() error {
	err := os.Remove(p.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
