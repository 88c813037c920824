package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yllada/ocmgr/session"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage named connection profiles",
	}

	cmd.AddCommand(newProfileAddCmd())
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileRemoveCmd())

	return cmd
}

func openProfileStore() (*session.ProfileStore, error) {
	path, err := session.DefaultProfilePath()
	if err != nil {
		return nil, err
	}
	return session.NewProfileStore(path)
}

func newProfileAddCmd() *cobra.Command {
	profile := &session.Profile{}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile.Name = args[0]
			store, err := openProfileStore()
			if err != nil {
				return err
			}
			if err := store.Add(profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q added.\n", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile.Server, "server", "", "VPN server hostname or URL (required)")
	cmd.Flags().StringVar(&profile.Username, "username", "", "VPN username")
	cmd.Flags().StringVar(&profile.Authgroup, "authgroup", "", "auth group/profile")
	cmd.Flags().StringVar(&profile.Interface, "interface", "", "TUN interface name")
	cmd.Flags().StringVar(&profile.ServerCert, "servercert", "", "server certificate pin")
	cmd.Flags().BoolVar(&profile.NoDTLS, "no-dtls", false, "disable DTLS/UDP")
	cmd.Flags().BoolVar(&profile.SavePassword, "save-password", false, "store the password in the keyring on first use")
	cmd.MarkFlagRequired("server")

	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connection profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}
			profiles := store.List()
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSERVER\tUSERNAME\tAUTHGROUP\tLAST USED")
			fmt.Fprintln(w, "----\t------\t--------\t---------\t---------")
			for _, p := range profiles {
				lastUsed := "never"
				if !p.LastUsed.IsZero() {
					lastUsed = p.LastUsed.Format("2006-01-02 15:04")
				}
				username := p.Username
				if username == "" {
					username = "-"
				}
				authgroup := p.Authgroup
				if authgroup == "" {
					authgroup = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Server, username, authgroup, lastUsed)
			}
			return w.Flush()
		},
	}
}

func newProfileRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProfileStore()
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q removed.\n", args[0])
			return nil
		},
	}
}
