package session

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Signal identifies the kind of termination signal to deliver.
type Signal int

const (
	// SignalGraceful asks openconnect to shut the tunnel down cleanly (SIGINT).
	SignalGraceful Signal = iota
	// SignalForce terminates openconnect without waiting (SIGTERM).
	SignalForce
)

// Runner abstracts process spawning, signaling, and liveness probing so the
// session controller can be tested against a fake implementation.
type Runner interface {
	// Run spawns the binary with the given arguments, writes stdin to its
	// standard input, and waits for it to exit. The subprocess inherits
	// stdout and stderr. Returns the subprocess's exit code.
	Run(ctx context.Context, path string, args []string, stdin string) (int, error)
	// Signal delivers a termination signal to the process id.
	Signal(pid int, sig Signal) error
	// Alive reports whether a process with the given id exists and is
	// signalable. Any probe failure counts as not running.
	Alive(pid int) bool
}

// NewRunner returns the Runner backed by real processes.
func NewRunner() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, path string, args []string, stdin string) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func (execRunner) Signal(pid int, sig Signal) error {
	s := unix.SIGINT
	if sig == SignalForce {
		s = unix.SIGTERM
	}
	return unix.Kill(pid, s)
}

func (execRunner) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return unix.Kill(pid, 0) == nil
}
