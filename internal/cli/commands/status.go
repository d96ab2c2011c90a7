package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/cli/auth"
	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var serverAlias string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a session token is stored, without contacting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(serverAlias)
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")

	return cmd
}

func runStatus(serverAlias string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	state := session.NewState(d.store)
	guard := d.guard(state, d.navigator())

	fmt.Fprintf(d.out, "Server: %s (%s)\n", d.server.Alias, d.server.URL)

	signedIn, err := guard.Initialize()
	if err != nil {
		return err
	}

	if !signedIn {
		fmt.Fprintln(d.out, "Status: signed out")
		fmt.Fprintln(d.out, "\nSign up or log in with: sessionguard signup")
		return nil
	}

	fmt.Fprintln(d.out, "Status: signed in")

	// Tokens that are not JWTs are still valid credentials; there is just nothing to show
	info, err := auth.Describe(state.Token())
	if err != nil {
		return nil
	}
	if info.Subject != "" {
		fmt.Fprintf(d.out, "  Subject: %s\n", info.Subject)
	}
	if !info.IssuedAt.IsZero() {
		fmt.Fprintf(d.out, "  Issued:  %s\n", info.IssuedAt.Format(time.RFC3339))
	}
	if !info.ExpiresAt.IsZero() {
		note := ""
		if info.Expired(time.Now()) {
			note = " (expired)"
		}
		fmt.Fprintf(d.out, "  Expires: %s%s\n", info.ExpiresAt.Format(time.RFC3339), note)
	}

	return nil
}
