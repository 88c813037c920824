package cli

import (
	"fmt"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"github.com/yllada/ocmgr/common"
	"github.com/yllada/ocmgr/config"
	"github.com/yllada/ocmgr/history"
	"github.com/yllada/ocmgr/keyring"
	"github.com/yllada/ocmgr/notify"
	"github.com/yllada/ocmgr/session"
)

func newConnectCmd(opts *rootOptions) *cobra.Command {
	var (
		username     string
		authgroup    string
		iface        string
		logFile      string
		servercert   string
		noDTLS       bool
		foreground   bool
		extra        string
		savePassword bool
		noKeyring    bool
	)

	cmd := &cobra.Command{
		Use:   "connect <server|profile>",
		Short: "Connect using openconnect (AnyConnect protocol)",
		Long: `Connect launches openconnect against the given server hostname or URL.
A saved profile name can be used in place of the server; its presets fill
in any flag not given explicitly. The password is read from the keyring
or prompted for, and handed to openconnect over stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := session.Config{
				Server:     args[0],
				Username:   username,
				Authgroup:  authgroup,
				Interface:  iface,
				ServerCert: servercert,
				NoDTLS:     noDTLS,
				Background: !foreground,
				LogFile:    logFile,
			}
			// A profile created with --save-password opts in even when the
			// connect-time flag is absent.
			savePassword = applyProfile(&cfg, args[0]) || savePassword
			applyConfigDefaults(&cfg, opts.cfg)

			if extra != "" {
				extraArgs, err := shellwords.Parse(extra)
				if err != nil {
					return fmt.Errorf("invalid --extra value: %w", err)
				}
				cfg.ExtraArgs = extraArgs
			}

			binary, err := session.Locate(opts.binaryPath())
			if err != nil {
				return err
			}

			var creds session.CredentialSource = &session.TerminalSource{
				User: cfg.Username,
				In:   cmd.InOrStdin(),
				Out:  cmd.OutOrStdout(),
			}
			if !noKeyring {
				creds = &session.VaultSource{
					Key:      cfg.Server,
					Fallback: creds,
					Vault:    keyring.NewVault(),
					Save:     savePassword,
				}
			}

			pidFile := opts.pidFile()
			ctrl := session.NewController(binary, pidFile, session.NewRunner(), creds)

			code, err := ctrl.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if code == 0 {
				recordEvent(opts, history.KindConnect, cfg.Server, pidOf(pidFile))
				if cfg.Background && opts.cfg.ShowNotifications {
					notify.TrySend("VPN connected", cfg.Server)
				}
				return nil
			}
			// The wrapped binary's exit code is passed through verbatim.
			return &ExitError{Code: code}
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "VPN username (else interactive prompt)")
	cmd.Flags().StringVar(&authgroup, "authgroup", "", "auth group/profile if the server asks for it")
	cmd.Flags().StringVar(&iface, "interface", "", "TUN interface name (default "+common.DefaultInterface+")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write openconnect logs to this file")
	cmd.Flags().StringVar(&servercert, "servercert", "", `pin the server certificate, e.g. "pin-sha256:BASE64..."`)
	cmd.Flags().BoolVar(&noDTLS, "no-dtls", false, "disable DTLS/UDP (force TLS/TCP)")
	cmd.Flags().BoolVar(&foreground, "foreground", false, "run in foreground (default runs in background)")
	cmd.Flags().StringVar(&extra, "extra", "", "extra openconnect args, shell-tokenized and appended last")
	cmd.Flags().BoolVar(&savePassword, "save-password", false, "store the password in the keyring under the server name")
	cmd.Flags().BoolVar(&noKeyring, "no-keyring", false, "skip keyring lookup, always prompt for the password")

	return cmd
}

// applyProfile replaces the target with a stored profile's server when the
// argument names one, filling any connection field the flags left empty.
// An argument that matches no profile is treated as a plain server address.
// Reports whether the matched profile asks for its password to be saved.
func applyProfile(cfg *session.Config, target string) bool {
	path, err := session.DefaultProfilePath()
	if err != nil {
		return false
	}
	store, err := session.NewProfileStore(path)
	if err != nil {
		common.LogWarn("profiles unavailable: %v", err)
		return false
	}
	profile, err := store.GetByName(target)
	if err != nil {
		return false
	}

	common.LogInfo("using profile %s (%s)", profile.Name, profile.Server)
	cfg.Server = profile.Server
	if cfg.Username == "" {
		cfg.Username = profile.Username
	}
	if cfg.Authgroup == "" {
		cfg.Authgroup = profile.Authgroup
	}
	if cfg.Interface == "" {
		cfg.Interface = profile.Interface
	}
	if cfg.ServerCert == "" {
		cfg.ServerCert = profile.ServerCert
	}
	if profile.NoDTLS {
		cfg.NoDTLS = true
	}
	if err := store.MarkUsed(profile.Name); err != nil {
		common.LogDebug("could not update profile usage: %v", err)
	}
	return profile.SavePassword
}

// applyConfigDefaults fills connection fields that neither flags nor the
// profile set from the loaded configuration. Flags stay authoritative.
func applyConfigDefaults(cfg *session.Config, app *config.Config) {
	if cfg.Interface == "" {
		cfg.Interface = app.Interface
	}
}

// pidOf reads the PID the daemonized openconnect wrote, if any.
func pidOf(pidFile session.PIDFile) int {
	pid, _ := pidFile.Read()
	return pid
}

// recordEvent appends to the history log; failures are logged, never fatal.
func recordEvent(opts *rootOptions, kind, server string, pid int) {
	if !opts.cfg.HistoryEnabled {
		return
	}
	path, err := history.DefaultPath()
	if err != nil {
		common.LogDebug("history unavailable: %v", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		common.LogDebug("history unavailable: %v", err)
		return
	}
	defer store.Close()
	if err := store.Record(kind, server, pid); err != nil {
		common.LogDebug("history not recorded: %v", err)
	}
}
