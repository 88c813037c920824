package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yllada/ocmgr/common"
	"github.com/yllada/ocmgr/history"
	"github.com/yllada/ocmgr/notify"
	"github.com/yllada/ocmgr/session"
)

func newDisconnectCmd(opts *rootOptions) *cobra.Command {
	var timeout int

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the session tracked by the PID file",
		Long: `Disconnect sends openconnect an interrupt and waits for it to exit,
escalating to a forceful termination after the timeout. A stale PID file
(process already gone) is cleaned up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pidFile := opts.pidFile()
			ctrl := session.NewController("", pidFile, session.NewRunner(), nil)

			outcome, pid, err := ctrl.Disconnect(cmd.Context(), time.Duration(timeout)*time.Second)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outcome {
			case session.DisconnectNoSession:
				fmt.Fprintf(out, "No PID found in %s. Are you connected?\n", pidFile.Path())
				return &ExitError{Code: outcome.ExitCode()}
			case session.DisconnectStale:
				fmt.Fprintf(out, "PID %d is not running. Cleaning PID file.\n", pid)
				recordEvent(opts, history.KindStale, "", pid)
			case session.DisconnectDone, session.DisconnectForced:
				fmt.Fprintf(out, "Disconnected (pid %d).\n", pid)
				recordEvent(opts, history.KindDisconnect, "", pid)
				if opts.cfg.ShowNotifications {
					notify.TrySend("VPN disconnected", fmt.Sprintf("pid %d", pid))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&timeout, "timeout", int(common.DisconnectTimeout.Seconds()),
		"seconds to wait before the forceful signal")

	return cmd
}
