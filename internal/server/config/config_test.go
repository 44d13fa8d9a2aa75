package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRES_IN", "BCRYPT_COST",
	"OLLAMA_URL", "OLLAMA_TIMEOUT", "STATIC_DIR", "LOG_LEVEL",
	"S3_ROOT_USER", "S3_ROOT_PASSWORD", "S3_BUCKET", "S3_REGION", "S3_BASE_ENDPOINT",
}

var origLoadDotEnv = loadDotEnv

// isolate clears config-related env vars, argv and the dotenv loader.
func isolate(t *testing.T, args ...string) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	origArgs := os.Args
	origLoad := loadDotEnv
	t.Cleanup(func() {
		os.Args = origArgs
		loadDotEnv = origLoad
	})
	loadDotEnv = func(string) error { return nil }
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":5000", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "http://localhost:11434/api/generate", c.InferenceURL)
	assert.Zero(t, c.InferenceTimeout)
	assert.Equal(t, "frontend", c.StaticDir)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.False(t, c.ArchiveEnabled())
}

func TestLoadConfig_UsesDefaultsWhenNothingElseIsSet(t *testing.T) {
	isolate(t)

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"endpoint_addr_http": ":7000",
		"secret_key":         "from-json",
	})

	isolate(t, "-c", path, "-s", "from-flag")
	t.Setenv("PORT", "6000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env")

	c := LoadConfig()

	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "json overrides env")
	assert.Equal(t, "from-flag", c.SecretKey, "flags override json")
	assert.Equal(t, "postgres://env", c.DatabaseDSN, "env overrides defaults")
}
