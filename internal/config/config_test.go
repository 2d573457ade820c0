package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
[server]
http_port = 8085

[database]
host = "localhost"
user = "rental"
password = "from-file"
dbname = "rental"

[auth]
jwt_secret = "file-secret"
`

// clearEnv убирает переопределения на время теста, t.Setenv восстановит их после
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envDBPassword, envJWTSecret, envHTTPPort} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "generated_contracts", cfg.Documents.Dir)
	assert.Equal(t, "S/", cfg.Documents.Currency)
	assert.Equal(t, 30, cfg.Auth.UserCacheTTLSec)
	assert.Equal(t, 600, cfg.RateLimit.IdleTTLSec)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envJWTSecret, "env-secret")
	t.Setenv(envHTTPPort, "9090")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, ErrReadConfig)
	})

	t.Run("bad port in env", func(t *testing.T) {
		t.Setenv(envHTTPPort, "eighty")
		_, err := Load(writeConfig(t, minimalConfig))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("user cache ttl too long", func(t *testing.T) {
		_, err := Load(writeConfig(t, minimalConfig+"user_cache_ttl = 3600\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv(envJWTSecret, "")
		_, err := Load(writeConfig(t, minimalConfig))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "rental", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rental sslmode=disable", d.DSN())
}
