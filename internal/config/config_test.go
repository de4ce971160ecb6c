package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
server:
  port: 9090
  allowedOrigins: ["http://localhost:5173"]
database:
  driver: postgres
  host: db
  user: radar
  password: secret
  name: blindspot
auth:
  users:
    tok-alice:
      id: u-alice
      email: alice@example.com
      displayName: Alice
analysis:
  delay: 0s
log:
  level: debug
  format: console
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	require.NotNil(t, cfg.Analysis.Delay)
	assert.Equal(t, time.Duration(0), *cfg.Analysis.Delay)
	assert.Equal(t, 700.0, cfg.Radar.Width)
	assert.Equal(t, "Alice", cfg.Auth.Users["tok-alice"].DisplayName)
	assert.Equal(t, "postgres://radar:secret@db:5432/blindspot?sslmode=disable", cfg.PostgresDSN())
}

func TestParseEmptyUsesMemoryAndDefaultDelay(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, *cfg.Analysis.Delay)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Contains(t, cfg.MySQLDSN(), "parseTime=true")
}

func TestInvalidConfig(t *testing.T) {
	_, err := Parse([]byte("database:\n  driver: oracle\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("minio:\n  enabled: true\n"))
	assert.Error(t, err)

	t.Setenv("PORT", "abc")
	_, err = Parse([]byte("{}"))
	assert.Error(t, err)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "u-alice", cfg.Auth.Users["tok-alice"].ID)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
