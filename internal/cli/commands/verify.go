package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/session"
)

var errNotSignedIn = errors.New("not signed in. Please run 'sessionguard signup' first")

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the stored session token against the server once",
		Long: `Check the stored session token against the server once.

If the server rejects the token or cannot be reached, the token is removed
and you are sent to the login page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")

	return cmd
}

func runVerify(ctx context.Context, serverAlias string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	state := session.NewState(d.store)
	if err := state.Load(); err != nil {
		return err
	}
	state.Normalize()
	if !state.SignedIn() {
		return errNotSignedIn
	}

	guard := d.guard(state, d.navigator())
	if err := guard.Verify(ctx); err != nil {
		return err
	}

	fmt.Fprintln(d.out, "✓ Session is valid")
	return nil
}
