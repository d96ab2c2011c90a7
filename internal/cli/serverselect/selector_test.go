package serverselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionguard-dev/sessionguard/internal/cli/config"
	"github.com/sessionguard-dev/sessionguard/internal/cli/userconfig"
)

func testConfig() *config.Config {
	return &config.Config{
		Servers: []config.Server{
			{URL: "http://localhost:8080", Alias: "local"},
			{URL: "https://auth.example.com", Alias: "prod"},
		},
	}
}

func TestResolveServer_ExplicitAlias(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	server, err := ResolveServer(testConfig(), "prod")
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example.com", server.URL)
}

func TestResolveServer_ExplicitURL(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	server, err := ResolveServer(testConfig(), "http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "local", server.Alias)
}

func TestResolveServer_UnknownAlias(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := ResolveServer(testConfig(), "staging")
	assert.Error(t, err)
}

func TestResolveServer_UsesSelectedServer(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedServer("https://auth.example.com"))

	server, err := ResolveServer(testConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, "prod", server.Alias)
}

func TestResolveServer_SingleServerIsSelected(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &config.Config{Servers: []config.Server{{URL: "http://localhost:8080", Alias: "local"}}}

	server, err := ResolveServer(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "local", server.Alias)

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", selected)
}

func TestResolveServer_StaleSelectionIsCleared(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, userconfig.SetSelectedServer("https://gone.example.com"))
	cfg := &config.Config{Servers: []config.Server{{URL: "http://localhost:8080", Alias: "local"}}}

	server, err := ResolveServer(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "local", server.Alias)
}
