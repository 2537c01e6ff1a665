package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "jwt-test")
	t.Setenv("SESSION_SECRET", "session-test")
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "hausa.db", cfg.Database.DataSourceName())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RememberTTL)
	assert.Equal(t, 50, cfg.Learning.DailyXPGoal)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	setSecrets(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  allowed_origins: ["https://hausa.example"]
database:
  driver: postgres
  host: db
  name: hausa_prod
learning:
  daily_xp_goal: 80
`), 0o600))

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://hausa.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 80, cfg.Learning.DailyXPGoal)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=hausa_prod sslmode=disable",
		cfg.Database.DataSourceName())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	setSecrets(t)

	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DAILY_XP_GOAL", "abc")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "a"
	cfg.Auth.SessionSecret = "b"
	assert.NoError(t, cfg.Validate())

	cfg.Scheduler.StreakResetAt = "25:99"
	assert.Error(t, cfg.Validate())
}

func TestCORSOriginsFromEnv(t *testing.T) {
	setSecrets(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}
