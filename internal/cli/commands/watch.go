package commands

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/cli/terminal"
	"github.com/sessionguard-dev/sessionguard/internal/session"
)

var errSessionLost = errors.New("session lost. Please run 'sessionguard signup' to log in again")

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	var serverAlias string
	var open bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep checking the session every 5 seconds until it is lost",
		Long: `Keep checking the session every 5 seconds until it is lost or interrupted.

The signed-in regions are printed whenever they change. When the token is
missing or the server stops accepting it, the token is removed, the login
page is announced and the command exits with an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), serverAlias, withBrowser(open))
		},
	}

	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the login page in the browser when the session is lost")

	return cmd
}

func runWatch(ctx context.Context, serverAlias string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Leaving for the login page ends this "page", just as in a browser
	var lost atomic.Bool
	navigator := d.navigator(terminal.OnNavigate(func(target string) {
		if target == session.LoginPage {
			lost.Store(true)
			cancel()
		}
	}))

	state := session.NewState(d.store)
	guard := d.guard(state, navigator)

	if _, err := guard.Initialize(); err != nil {
		return err
	}

	fmt.Fprintf(d.out, "Watching session on %s (%s). Press Ctrl+C to stop.\n", d.server.Alias, d.server.URL)

	if err := guard.EnsureSession(ctx); err != nil {
		return err
	}

	if lost.Load() {
		return errSessionLost
	}
	return nil
}
