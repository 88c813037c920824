package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yllada/ocmgr/session"
	"github.com/yllada/ocmgr/tui"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show connection status based on the PID file",
		Long: `Status reports the session state derived from the PID file: CONNECTED
when the recorded process is alive, DISCONNECTED when there is no usable
PID, and STALE when the recorded process is gone. The PID file is never
modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := session.NewController("", opts.pidFile(), session.NewRunner(), nil)

			if watch {
				return tui.Watch(ctrl.Status)
			}

			state, pid := ctrl.Status()
			out := cmd.OutOrStdout()
			switch state {
			case session.StateConnected:
				fmt.Fprintf(out, "CONNECTED pid=%d\n", pid)
				return nil
			case session.StateStale:
				fmt.Fprintf(out, "STALE pid_file (pid=%d not running)\n", pid)
			default:
				fmt.Fprintln(out, "DISCONNECTED")
			}
			return &ExitError{Code: state.ExitCode()}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "live status view, refreshed every second")

	return cmd
}
