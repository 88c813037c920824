package common

import "time"

// Application metadata.
const (
	// AppName is the display name of the application.
	AppName = "OpenConnect Manager"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "ocmgr"
	// BinaryName is the name of the wrapped VPN client binary.
	BinaryName = "openconnect"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	ProfilesFileName    = "profiles.yaml"
	CredentialsFileName = ".credentials"
	HistoryFileName     = "history.db"
	LogFileName         = "ocmgr.log"
)

// Connection defaults.
const (
	// DefaultPIDFile is the well-known PID file path used when neither a
	// flag nor the config file provide one. openconnect itself writes its
	// daemon PID here.
	DefaultPIDFile = "/run/ocmgr.pid"
	// DefaultInterface is the TUN interface name passed to openconnect.
	DefaultInterface = "tun0"
	// ProtocolAnyConnect selects the AnyConnect-compatible protocol.
	ProtocolAnyConnect = "anyconnect"
)

// Timeouts and intervals.
const (
	// DisconnectTimeout is the default grace period before escalating to
	// a forceful termination signal.
	DisconnectTimeout = 10 * time.Second
	// PollInterval is how often disconnect re-checks process liveness.
	PollInterval = 100 * time.Millisecond
	// WatchInterval is how often the live status view refreshes.
	WatchInterval = 1 * time.Second
	// NotifyTimeout is how long desktop notifications stay on screen.
	NotifyTimeout = 5 * time.Second
)
