package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sessionguard-dev/sessionguard/internal/requestid"
)

// VerifyInterval is the fixed period between session checks.
const VerifyInterval = 5 * time.Second

// Verifier asks the auth service whether token is still valid.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// GuardConfig wires a Guard to its state, transport and UI surfaces.
type GuardConfig struct {
	State     *State
	Verifier  Verifier
	Presenter Presenter
	Notifier  Notifier
	Navigator Navigator
	Logger    zerolog.Logger
}

// Guard keeps a session alive by polling the auth service and keeps the
// signed-in regions of the UI consistent with the token.
//
// At most one verification is in flight at a time: a tick that fires while
// the previous verification is still pending is skipped.
type Guard struct {
	state     *State
	verifier  Verifier
	presenter Presenter
	notifier  Notifier
	navigator Navigator
	logger    zerolog.Logger

	period    time.Duration
	verifying atomic.Bool
	inflight  sync.WaitGroup
}

// NewGuard creates a Guard polling every VerifyInterval.
func NewGuard(cfg GuardConfig) *Guard {
	return &Guard{
		state:     cfg.State,
		verifier:  cfg.Verifier,
		presenter: cfg.Presenter,
		notifier:  cfg.Notifier,
		navigator: cfg.Navigator,
		logger:    cfg.Logger,
		period:    VerifyInterval,
	}
}

// Initialize loads the persisted token and applies the resulting AuthStatus
// to the UI. It performs no network call.
func (g *Guard) Initialize() (bool, error) {
	if err := g.state.Load(); err != nil {
		g.ApplyVisibility()
		return false, err
	}
	return g.ApplyVisibility(), nil
}

// Verify checks the current token against the auth service. Any failure,
// whether transport or rejection, ends the session: the token is cleared, a
// notice is shown and the user is sent to the login page.
//
// A failure that arrives after ctx is cancelled is discarded without
// touching the session.
func (g *Guard) Verify(ctx context.Context) error {
	id := requestid.New()
	logger := g.logger.With().Str("verification_id", id).Logger()

	start := time.Now()
	err := g.verifier.Verify(requestid.NewContext(ctx, id), g.state.Token())
	if err == nil {
		logger.Debug().Dur("duration", time.Since(start)).Msg("Session verified")
		return nil
	}

	if ctx.Err() != nil {
		logger.Debug().Err(err).Msg("Verification abandoned")
		return ctx.Err()
	}

	logger.Warn().
		Err(err).
		Bool("rejected", isRejected(err)).
		Dur("duration", time.Since(start)).
		Msg("Session verification failed")

	if clearErr := g.state.Clear(); clearErr != nil {
		logger.Error().Err(clearErr).Msg("Failed to clear session")
	}
	g.notifier.Notify(newNotice(NoticeSessionExpired, err))
	g.navigator.Navigate(LoginPage)

	return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
}

// Tick runs one polling cycle.
func (g *Guard) Tick(ctx context.Context) {
	g.state.Normalize()

	if g.state.SignedIn() {
		g.verifyInBackground(ctx)
	} else {
		g.logger.Info().Msg("No session token, redirecting to login")
		if err := g.state.Clear(); err != nil {
			g.logger.Error().Err(err).Msg("Failed to remove persisted token")
		}
		g.notifier.Notify(newNotice(NoticeLoginRequired, nil))
		g.navigator.Navigate(LoginPage)
	}

	g.ApplyVisibility()
}

func (g *Guard) verifyInBackground(ctx context.Context) {
	if !g.verifying.CompareAndSwap(false, true) {
		g.logger.Debug().Msg("Previous verification still pending, skipping tick")
		return
	}

	g.inflight.Add(1)
	go func() {
		defer g.inflight.Done()
		defer g.verifying.Store(false)
		_ = g.Verify(ctx)
	}()
}

// EnsureSession runs Tick every VerifyInterval until ctx is cancelled, then
// waits for a pending verification to finish.
func (g *Guard) EnsureSession(ctx context.Context) error {
	ticker := time.NewTicker(g.period)
	defer ticker.Stop()

	g.logger.Info().Dur("interval", g.period).Msg("Session guard started")

	for {
		select {
		case <-ctx.Done():
			g.inflight.Wait()
			g.logger.Info().Msg("Session guard stopped")
			return nil
		case <-ticker.C:
			g.Tick(ctx)
		}
	}
}

// Terminate logs the user out locally and navigates to the application root.
// The auth service is not notified.
func (g *Guard) Terminate() error {
	err := g.state.Clear()
	g.navigator.Navigate(RootPage)
	return err
}

// ApplyVisibility pushes the current AuthStatus to the presenter and returns it.
func (g *Guard) ApplyVisibility() bool {
	signedIn := g.state.SignedIn()
	visibility := VisibilityFor(signedIn)
	for _, region := range Regions {
		g.presenter.SetVisibility(region, visibility[region])
	}
	return signedIn
}
