package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/cli/terminal"
	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// NewSignupCmd creates the signup command
func NewSignupCmd() *cobra.Command {
	var email, password, serverAlias string
	var open bool

	cmd := &cobra.Command{
		Use:     "signup",
		Aliases: []string{"login"},
		Short:   "Create an account (or sign in to an existing one) and store the session token",
		Long: `Submit email and password to the auth service and store the returned token.

The auth service signs existing users in through the same endpoint, so
'sessionguard login' is an alias of this command.

Values are sent as given. Missing values are prompted for on an interactive
terminal and sent empty otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd.Context(), serverAlias, email, password, withBrowser(open))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SESSIONGUARD_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SESSIONGUARD_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the application in the browser on success")

	return cmd
}

func runSignup(ctx context.Context, serverAlias, email, password string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = d.env.Credentials.Email
	}
	if password == "" {
		password = d.env.Credentials.Password
	}

	form := terminal.NewForm(d.errOut, map[string]string{
		session.FieldEmail:    email,
		session.FieldPassword: password,
	})

	return submitSignup(ctx, d, form)
}

func submitSignup(ctx context.Context, d *deps, form session.Form) error {
	signup := session.NewSignupClient(session.SignupConfig{
		State:     session.NewState(d.store),
		Registrar: d.api,
		Form:      form,
		Notifier:  terminal.NewNotifier(d.errOut, *d.logger),
		Navigator: d.navigator(),
		Logger:    d.logger.With().Str("server", d.server.URL).Logger(),
	})

	fmt.Fprintf(d.out, "Signing up at %s (%s)...\n", d.server.Alias, d.server.URL)

	if err := signup.Submit(ctx); err != nil {
		return err
	}

	fmt.Fprintln(d.out, "✓ Signup successful! Session token stored.")
	return nil
}
