package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sessionguard-dev/sessionguard/internal/cli/terminal"
	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// NewResetPasswordCmd creates the reset-password command
func NewResetPasswordCmd() *cobra.Command {
	var email, serverAlias string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request a password reset link by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResetPassword(cmd.Context(), serverAlias, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SESSIONGUARD_EMAIL)")
	cmd.Flags().StringVar(&serverAlias, "server", "", "Server URL or alias (uses the selected server if not specified)")

	return cmd
}

func runResetPassword(ctx context.Context, serverAlias, email string, opts ...Option) error {
	d, err := resolveDeps(serverAlias, opts...)
	if err != nil {
		return err
	}
	defer closeStore(d.store)

	if email == "" {
		email = d.env.Credentials.Email
	}
	email = terminal.NewForm(d.errOut, map[string]string{session.FieldEmail: email}).Value(session.FieldEmail)
	if email == "" {
		return fmt.Errorf("email is required (use --email flag or SESSIONGUARD_EMAIL env var)")
	}

	if err := d.api.RequestPasswordReset(ctx, email); err != nil {
		d.logger.Error().Err(err).Str("email", email).Msg("Password reset request failed")
		return fmt.Errorf("password reset request failed: %w", err)
	}

	fmt.Fprintln(d.out, "✓ If the address is registered, a reset link is on its way.")
	return nil
}
