package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session token",
		Long: `Remove the stored session token.

The server is not contacted; the token stays valid there until it expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")

	return cmd
}

func runLogout(serverAlias string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	state := session.NewState(d.store)
	guard := d.guard(state, d.navigator())

	if err := guard.Terminate(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}

	fmt.Fprintln(d.out, "✓ Logged out")
	return nil
}
