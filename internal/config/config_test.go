package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := chdir(t)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvAdminHash, "")

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().DBPath, cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 80, cfg.Display.Width)
	assert.Empty(t, cfg.Admin.PasswordHash)
}

func TestLoadYAML(t *testing.T) {
	dir := chdir(t)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvAdminHash, "")

	p := writeFile(t, dir, "config.yaml", `
db_path: /tmp/bank.db
log_level: debug
admin:
  password_hash: "$2a$10$abc"
display:
  width: 100
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bank.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "$2a$10$abc", cfg.Admin.PasswordHash)
	assert.Equal(t, 100, cfg.Display.Width)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	p := writeFile(t, dir, "config.yaml", "db_path: /from/file.db\nlog_level: info\n")

	t.Setenv(EnvDB, "/from/env.db")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvAdminHash, "")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestDotEnvIsLoaded(t *testing.T) {
	dir := chdir(t)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvAdminHash, "")
	os.Unsetenv(EnvDB)

	writeFile(t, dir, ".env", "QBANK_DB=/from/dotenv.db\n")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv.db", cfg.DBPath)
	os.Unsetenv(EnvDB)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdir(t)
	p := writeFile(t, dir, "config.yaml", "db_path: [unterminated\n")
	_, err := Load(p)
	assert.Error(t, err)
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/qbank.yaml")
	assert.Equal(t, "/etc/qbank.yaml", DefaultPath())
}
