package session

import (
	"context"
	"fmt"
	"time"

	"github.com/yllada/ocmgr/common"
)

// State represents the observable session state derived from the PID file.
type State int

const (
	// StateDisconnected indicates no PID file or no usable id in it.
	StateDisconnected State = iota
	// StateConnecting is the transient state during subprocess launch.
	StateConnecting
	// StateConnected indicates the PID file names a live process.
	StateConnected
	// StateStale indicates the PID file names a dead process.
	StateStale
)

// String returns the machine-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateStale:
		return "STALE"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps a state to the status command's exit code.
func (s State) ExitCode() int {
	switch s {
	case StateConnected:
		return 0
	case StateStale:
		return 2
	default:
		return 1
	}
}

// Config holds the per-invocation connection parameters translated into
// openconnect arguments. It is never persisted.
type Config struct {
	Server     string
	Username   string
	Authgroup  string
	Interface  string
	ServerCert string
	NoDTLS     bool
	Background bool
	LogFile    string
	ExtraArgs  []string
}

// DisconnectOutcome describes how a disconnect attempt concluded.
type DisconnectOutcome int

const (
	// DisconnectNoSession means no PID was found; there was nothing to stop.
	DisconnectNoSession DisconnectOutcome = iota
	// DisconnectStale means the PID named a dead process and the file was
	// cleaned up.
	DisconnectStale
	// DisconnectDone means the process exited within the grace period.
	DisconnectDone
	// DisconnectForced means the grace period elapsed and the forceful
	// signal was sent without re-verification.
	DisconnectForced
)

// ExitCode maps an outcome to the disconnect command's exit code.
func (o DisconnectOutcome) ExitCode() int {
	if o == DisconnectNoSession {
		return 1
	}
	return 0
}

// Controller drives the session state machine over a PID file, a process
// runner, and a credential source. It holds no hidden global state: the
// PID file path is injected, which keeps tests on temporary paths.
type Controller struct {
	binary  string
	pidFile PIDFile
	runner  Runner
	creds   CredentialSource

	// privilege check, swappable in tests
	guard func() error
}

// NewController creates a session controller for the given binary path,
// PID file, runner, and credential source.
func NewController(binary string, pidFile PIDFile, runner Runner, creds CredentialSource) *Controller {
	return &Controller{
		binary:  binary,
		pidFile: pidFile,
		runner:  runner,
		creds:   creds,
		guard:   CheckPrivileges,
	}
}

// PIDFile returns the controller's PID file handle.
func (c *Controller) PIDFile() PIDFile {
	return c.pidFile
}

// buildArgs assembles the openconnect invocation deterministically:
// protocol, user, interface, stdin-password flag, pid-file, server, then
// optional flags only when set, then caller-supplied extras verbatim.
func (c *Controller) buildArgs(cfg Config, username string) []string {
	iface := cfg.Interface
	if iface == "" {
		iface = common.DefaultInterface
	}

	args := []string{
		"--protocol=" + common.ProtocolAnyConnect,
		"--user", username,
		"--interface", iface,
		"--passwd-on-stdin",
		"--pid-file", c.pidFile.Path(),
		cfg.Server,
	}
	if cfg.Authgroup != "" {
		args = append(args, "--authgroup", cfg.Authgroup)
	}
	if cfg.ServerCert != "" {
		args = append(args, "--servercert", cfg.ServerCert)
	}
	if cfg.NoDTLS {
		args = append(args, "--no-dtls")
	}
	if cfg.Background {
		args = append(args, "--background")
	}
	if cfg.LogFile != "" {
		args = append(args, "--log", cfg.LogFile)
	}
	args = append(args, cfg.ExtraArgs...)
	return args
}

// Connect resolves credentials, launches openconnect, and feeds it the
// password over stdin. In foreground mode it blocks until the subprocess
// exits; in background mode openconnect daemonizes itself and writes the
// PID file. The subprocess's exit code is returned unchanged.
func (c *Controller) Connect(ctx context.Context, cfg Config) (int, error) {
	if err := c.guard(); err != nil {
		return 0, err
	}
	if cfg.Server == "" {
		return 0, fmt.Errorf("server address is required")
	}

	username := cfg.Username
	if username == "" {
		var err error
		username, err = c.creds.Username()
		if err != nil {
			return 0, err
		}
	}
	password, err := c.creds.Password()
	if err != nil {
		return 0, err
	}

	args := c.buildArgs(cfg, username)
	common.LogInfo("starting %s for %s (background=%v)", c.binary, cfg.Server, cfg.Background)
	common.LogDebug("arguments: %v", args)

	code, err := c.runner.Run(ctx, c.binary, args, password+"\n")
	if err != nil {
		return code, fmt.Errorf("failed to run %s: %w", c.binary, err)
	}
	common.LogInfo("%s exited with code %d", common.BinaryName, code)
	return code, nil
}

// Disconnect reads the PID file and tears the session down. A live process
// first gets the graceful signal; liveness is then polled until timeout,
// after which the forceful signal is sent fire-and-forget. Cancelling ctx
// (e.g. our own SIGINT during the wait) aborts the polling early and falls
// through to the forceful signal.
func (c *Controller) Disconnect(ctx context.Context, timeout time.Duration) (DisconnectOutcome, int, error) {
	if err := c.guard(); err != nil {
		return 0, 0, err
	}

	pid, ok := c.pidFile.Read()
	if !ok {
		return DisconnectNoSession, 0, nil
	}

	if !c.runner.Alive(pid) {
		common.LogInfo("pid %d not running, cleaning up %s", pid, c.pidFile.Path())
		if err := c.pidFile.Remove(); err != nil {
			return 0, pid, fmt.Errorf("failed to remove stale PID file: %w", err)
		}
		return DisconnectStale, pid, nil
	}

	if err := c.runner.Signal(pid, SignalGraceful); err != nil {
		common.LogWarn("graceful signal to pid %d failed: %v", pid, err)
	}

	ticker := time.NewTicker(common.PollInterval)
	defer ticker.Stop()
	deadline := time.Now().Add(timeout)

poll:
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			common.LogInfo("wait interrupted, escalating")
			break poll
		case <-ticker.C:
			if !c.runner.Alive(pid) {
				if err := c.pidFile.Remove(); err != nil {
					return 0, pid, fmt.Errorf("failed to remove PID file: %w", err)
				}
				return DisconnectDone, pid, nil
			}
		}
	}

	if err := c.runner.Signal(pid, SignalForce); err != nil {
		common.LogWarn("forceful signal to pid %d failed: %v", pid, err)
	}
	// Fire-and-forget escalation; the final probe is for logging only.
	if c.runner.Alive(pid) {
		common.LogWarn("pid %d still alive after forceful signal", pid)
	}
	return DisconnectForced, pid, nil
}

// Status is a pure read-only query over the PID file and liveness probe.
// It never mutates the PID file, even for stale entries.
func (c *Controller) Status() (State, int) {
	pid, ok := c.pidFile.Read()
	if !ok {
		return StateDisconnected, 0
	}
	if c.runner.Alive(pid) {
		return StateConnected, pid
	}
	return StateStale, pid
}
