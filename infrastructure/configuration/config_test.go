package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDefault(t *testing.T) {
	os.Unsetenv("ENV")
	assert.Equal(t, "config", getConfig())
}

func TestGetConfigWithEnv(t *testing.T) {
	t.Setenv("ENV", "stage")
	assert.Equal(t, "config-stage", getConfig())
}

func TestInitGraphDefaults(t *testing.T) {
	var c Config
	initGraph(&c)
	assert.Equal(t, defaultGraphVersion, c.Graph.Version)
	assert.Equal(t, "https://graph.facebook.com", c.Graph.BaseURL)
	assert.Equal(t, defaultRedirectURI, c.Graph.RedirectURI)
	assert.Equal(t, defaultScopes, c.Graph.Scopes)
	assert.Equal(t, ".instagram_tokens.json", c.TokenStore.File)
}

func TestInitGraphEnvOverrides(t *testing.T) {
	t.Setenv("INSTAGRAM_GRAPH_API_VERSION", "v23.0")
	t.Setenv("INSTAGRAM_GRAPH_BASE_URL", "http://127.0.0.1:9999")
	t.Setenv("OAUTH2_CLIENT_ID", "client-123")
	t.Setenv("INSTAGRAM_USER_ID", "1789")

	var c Config
	initGraph(&c)
	assert.Equal(t, "v23.0", c.Graph.Version)
	assert.Equal(t, "http://127.0.0.1:9999", c.Graph.BaseURL)
	assert.Equal(t, "client-123", c.Graph.ClientID)
	assert.Equal(t, "1789", c.Graph.InstagramUserID)
}

func TestInitAppPortResolution(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("PORT", "9091")

	var c Config
	initApp(&c)
	assert.Equal(t, 8081, c.App.Port)
}

func TestInitAppPortDefault(t *testing.T) {
	os.Unsetenv("APP_PORT")
	os.Unsetenv("PORT")

	var c Config
	initApp(&c)
	assert.Equal(t, 10090, c.App.Port)
}

func TestLoadEnvFromFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.env")
	content := "# comment\nTEST_ENV_LOADER_KEY=hello\nTEST_ENV_LOADER_QUOTED=\"world\"\n"
	assert.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	os.Unsetenv("TEST_ENV_LOADER_KEY")
	t.Setenv("TEST_ENV_LOADER_EXISTING", "keep")
	LoadEnvFromFile(p)

	assert.Equal(t, "hello", os.Getenv("TEST_ENV_LOADER_KEY"))
	assert.Equal(t, "world", os.Getenv("TEST_ENV_LOADER_QUOTED"))
	assert.Equal(t, "keep", os.Getenv("TEST_ENV_LOADER_EXISTING"))
}
