// Command ocmgr supervises the openconnect VPN client on Linux servers.
// It assembles the openconnect invocation, supplies the password over a
// pipe, and tracks the connection through a PID file shared with the
// daemonized client.
//
// Usage:
//
//	sudo ocmgr connect vpn.company.com --username alice
//	ocmgr status
//	sudo ocmgr disconnect
//
// All VPN protocol negotiation, tunneling, and TUN device management is
// delegated to openconnect itself.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/ocmgr/cli"
	"github.com/yllada/ocmgr/common"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z).
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	// SIGINT during disconnect's wait loop cancels the context, which the
	// controller treats as "stop waiting, escalate".
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(appVersion, buildTime, commitSHA)
	err := root.ExecuteContext(ctx)
	common.CloseLogger()

	if err == nil {
		return
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
