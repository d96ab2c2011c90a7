package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sessionguard-dev/sessionguard/internal/cli/auth"
	"github.com/sessionguard-dev/sessionguard/internal/cli/client"
	"github.com/sessionguard-dev/sessionguard/internal/cli/config"
	"github.com/sessionguard-dev/sessionguard/internal/cli/serverselect"
	"github.com/sessionguard-dev/sessionguard/internal/cli/terminal"
	"github.com/sessionguard-dev/sessionguard/internal/cli/userconfig"
	envconfig "github.com/sessionguard-dev/sessionguard/internal/config"
	"github.com/sessionguard-dev/sessionguard/internal/logger"
	"github.com/sessionguard-dev/sessionguard/internal/session"
)

// deps holds what a session command needs. Options replace individual
// pieces, which is how tests inject fakes.
type deps struct {
	env         *envconfig.Config
	server      *config.Server
	store       auth.TokenStore
	api         *client.Client
	out         io.Writer
	errOut      io.Writer
	logger      *zerolog.Logger
	openBrowser bool
}

// Option customizes command dependencies
type Option func(*deps)

// WithServer skips server resolution and uses server
func WithServer(server *config.Server) Option {
	return func(d *deps) {
		d.server = server
	}
}

// WithTokenStore replaces the configured token store
func WithTokenStore(store auth.TokenStore) Option {
	return func(d *deps) {
		d.store = store
	}
}

// WithOutput redirects command output and notices
func WithOutput(out, errOut io.Writer) Option {
	return func(d *deps) {
		d.out = out
		d.errOut = errOut
	}
}

// WithLogger replaces the global logger
func WithLogger(log zerolog.Logger) Option {
	return func(d *deps) {
		d.logger = &log
	}
}

// WithEnv replaces configuration loaded from the environment
func WithEnv(env *envconfig.Config) Option {
	return func(d *deps) {
		d.env = env
	}
}

func withBrowser(open bool) Option {
	return func(d *deps) {
		d.openBrowser = open
	}
}

// resolveDeps applies opts and fills in everything they left unset from
// the project config, the user config and the environment.
func resolveDeps(serverAlias string, opts ...Option) (*deps, error) {
	d := &deps{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.out = terminal.SyncWriter(d.out)
	d.errOut = terminal.SyncWriter(d.errOut)

	if d.logger == nil {
		log := logger.GetLogger()
		d.logger = &log
	}

	if d.env == nil {
		env, err := envconfig.Load()
		if err != nil {
			return nil, err
		}
		d.env = env
	}

	if d.server == nil {
		server, err := getSelectedServer(serverAlias)
		if err != nil {
			return nil, err
		}
		d.server = server
	}

	if d.store == nil {
		store, err := openTokenStore(d.env, d.server)
		if err != nil {
			return nil, err
		}
		d.store = store
	}

	d.api = client.New(d.server.URL, d.env.HTTP.RequestTimeout)

	return d, nil
}

// getSelectedServer loads the config and returns the selected server.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'sessionguard init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}

	return server, nil
}

func openTokenStore(env *envconfig.Config, server *config.Server) (auth.TokenStore, error) {
	namespace, err := auth.Namespace(server.URL)
	if err != nil {
		return nil, err
	}

	dataDir := env.TokenStore.DataDir
	if dataDir == "" {
		dataDir, err = userconfig.Dir()
		if err != nil {
			return nil, err
		}
	}

	return auth.Open(env.TokenStore.Backend, namespace, dataDir)
}

// closeStore releases stores that hold open resources
func closeStore(store auth.TokenStore) {
	if c, ok := store.(io.Closer); ok {
		_ = c.Close()
	}
}

func (d *deps) navigator(opts ...terminal.NavigatorOption) *terminal.Navigator {
	opts = append([]terminal.NavigatorOption{terminal.WithBrowser(d.openBrowser)}, opts...)
	return terminal.NewNavigator(d.out, d.api.BaseURL(), opts...)
}

func (d *deps) guard(state *session.State, navigator session.Navigator) *session.Guard {
	return session.NewGuard(session.GuardConfig{
		State:     state,
		Verifier:  d.api,
		Presenter: terminal.NewPresenter(d.out),
		Notifier:  terminal.NewNotifier(d.errOut, *d.logger),
		Navigator: navigator,
		Logger:    d.logger.With().Str("server", d.server.URL).Logger(),
	})
}
