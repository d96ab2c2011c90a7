package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Registrar submits new-account credentials to the auth service and returns
// the issued access token. Errors implementing Rejected() bool that report
// true mean the service refused the credentials.
type Registrar interface {
	Signup(ctx context.Context, email, password string) (string, error)
}

// SignupConfig wires a SignupClient.
type SignupConfig struct {
	State     *State
	Registrar Registrar
	Form      Form
	Notifier  Notifier
	Navigator Navigator
	Logger    zerolog.Logger
}

// SignupClient registers an account and bootstraps a session from the
// returned token.
type SignupClient struct {
	state     *State
	registrar Registrar
	form      Form
	notifier  Notifier
	navigator Navigator
	logger    zerolog.Logger
}

func NewSignupClient(cfg SignupConfig) *SignupClient {
	return &SignupClient{
		state:     cfg.State,
		registrar: cfg.Registrar,
		form:      cfg.Form,
		notifier:  cfg.Notifier,
		navigator: cfg.Navigator,
		logger:    cfg.Logger,
	}
}

// Submit sends the form's email and password as they are. On success the
// token is stored and the user is sent to the home page; on failure a notice
// is shown and the session is left untouched.
func (c *SignupClient) Submit(ctx context.Context) error {
	email := c.form.Value(FieldEmail)
	password := c.form.Value(FieldPassword)

	token, err := c.registrar.Signup(ctx, email, password)
	if err != nil {
		if isRejected(err) {
			c.logger.Info().Err(err).Str("email", email).Msg("Signup rejected")
			c.notifier.Notify(newNotice(NoticeSignupRejected, err))
			return fmt.Errorf("%w: %w", ErrSignupRejected, err)
		}

		c.logger.Error().Err(err).Str("email", email).Msg("Signup request failed")
		c.notifier.Notify(newNotice(NoticeSignupFailed, err))
		return fmt.Errorf("signup request failed: %w", err)
	}

	if err := c.state.Set(token); err != nil {
		c.logger.Error().Err(err).Msg("Failed to store session token")
		c.notifier.Notify(newNotice(NoticeSignupFailed, err))
		return err
	}

	c.logger.Info().Str("email", email).Msg("Signup succeeded")
	c.navigator.Navigate(HomePage)
	return nil
}
