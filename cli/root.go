// Package cli provides the cobra command tree for the OpenConnect session
// manager: connect, disconnect, status, plus profile and history management.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yllada/ocmgr/common"
	"github.com/yllada/ocmgr/config"
	"github.com/yllada/ocmgr/session"
)

// ExitError carries an explicit process exit code through cobra's error
// path. Commands return it when the code itself is the result (status
// states, pass-through subprocess codes), not a failure to report.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// rootOptions holds global flags and the loaded configuration shared by
// all subcommands.
type rootOptions struct {
	openconnectPath string
	pidFilePath     string
	verbose         bool

	cfg *config.Config
}

// pidFile resolves the effective PID file path: flag, then config, then
// the built-in default.
func (o *rootOptions) pidFile() session.PIDFile {
	path := o.pidFilePath
	if path == "" {
		path = o.cfg.PIDFile
	}
	if path == "" {
		path = common.DefaultPIDFile
	}
	return session.NewPIDFile(path)
}

// binaryPath resolves the explicit openconnect path, if any: flag first,
// then config. Empty means PATH lookup.
func (o *rootOptions) binaryPath() string {
	if o.openconnectPath != "" {
		return o.openconnectPath
	}
	return o.cfg.OpenconnectPath
}

// NewRootCmd builds the command tree. Version info comes from build-time
// ldflags in main.
func NewRootCmd(version, buildTime, commitSHA string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ocmgr",
		Short: "OpenConnect helper for AnyConnect-compatible VPNs",
		Long: `ocmgr supervises the openconnect VPN client: it assembles the
invocation, feeds the password over stdin, and tracks the connection
through a PID file. All protocol work is done by openconnect itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				common.LogWarn("using default configuration: %v", err)
				cfg = config.DefaultConfig()
			}
			opts.cfg = cfg

			level := common.LevelInfo
			if opts.verbose {
				level = common.LevelDebug
			}
			logCfg := common.LogConfig{
				Level:       level,
				EnableFile:  true,
				MaxFileSize: cfg.LogMaxSize,
				MaxBackups:  cfg.LogMaxBackups,
			}
			if err := common.InitLogger(logCfg); err != nil {
				common.LogWarn("file logging unavailable: %v", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.openconnectPath, "openconnect-path", "",
		"path to the openconnect binary (default: search PATH)")
	root.PersistentFlags().StringVar(&opts.pidFilePath, "pid-file", "",
		"PID file used to track the connection (default "+common.DefaultPIDFile+")")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false,
		"enable debug logging")

	root.AddCommand(newConnectCmd(opts))
	root.AddCommand(newDisconnectCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newVersionCmd(version, buildTime, commitSHA))

	return root
}

func newVersionCmd(version, buildTime, commitSHA string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ocmgr v%s\n", version)
			if buildTime != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "  Build:  %s\n", buildTime)
				fmt.Fprintf(cmd.OutOrStdout(), "  Commit: %s\n", commitSHA)
			}
		},
	}
}
