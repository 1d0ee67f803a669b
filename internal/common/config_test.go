package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	config := NewDefaultConfig()

	require.NoError(t, config.Validate())
	assert.Equal(t, "https://nominatim.openstreetmap.org", config.Geocoder.BaseURL)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", config.Overpass.BaseURL)
	assert.Equal(t, time.Second, config.Geocoder.RateLimit)
	assert.Equal(t, 25, config.Overpass.QueryTimeout)
	assert.False(t, config.IsProduction())
}

func TestLoadFromFiles_LaterFileOverrides(t *testing.T) {
	base := writeConfigFile(t, "base.toml", `
[server]
port = 9000
host = "0.0.0.0"

[geocoder]
language = "en"
`)
	override := writeConfigFile(t, "override.toml", `
[server]
port = 9100

[geocoder]
country_codes = "pl"
`)

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 9100, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "en", config.Geocoder.Language)
	assert.Equal(t, "pl", config.Geocoder.CountryCodes)
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "apteka.toml", `
[server]
port = 9000
`)
	t.Setenv("APTEKA_SERVER_PORT", "9200")
	t.Setenv("APTEKA_LOG_OUTPUT", "stdout, file")
	t.Setenv("APTEKA_SEARCH_TIMEOUT", "5s")
	t.Setenv("APTEKA_ENV", "production")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9200, config.Server.Port)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
	assert.Equal(t, 5*time.Second, config.Search.Timeout)
	assert.True(t, config.IsProduction())
}

func TestLoadFromFiles_EnvOverridesUpstreamPacing(t *testing.T) {
	path := writeConfigFile(t, "apteka.toml", `
[geocoder]
rate_limit = "1s"

[overpass]
rate_limit = "1s"
query_timeout = 25
`)
	t.Setenv("APTEKA_GEOCODER_RATE_LIMIT", "2s")
	t.Setenv("APTEKA_OVERPASS_RATE_LIMIT", "500ms")
	t.Setenv("APTEKA_OVERPASS_QUERY_TIMEOUT", "60")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, config.Geocoder.RateLimit)
	assert.Equal(t, 500*time.Millisecond, config.Overpass.RateLimit)
	assert.Equal(t, 60, config.Overpass.QueryTimeout)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeConfigFile(t, "bad.toml", "[server\nport = ")
		_, err := LoadFromFiles(path)
		assert.Error(t, err)
	})

	t.Run("invalid geocoder url", func(t *testing.T) {
		path := writeConfigFile(t, "url.toml", `
[geocoder]
base_url = "not a url"
`)
		_, err := LoadFromFiles(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := writeConfigFile(t, "level.toml", `
[logging]
level = "loud"
`)
		_, err := LoadFromFiles(path)
		assert.Error(t, err)
	})
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)

	ApplyFlagOverrides(config, 3000, "127.0.0.1")
	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
}
