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
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644)
	require.NoError(t, err)
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
app:
  name: vaultcc
  env: local
economy:
  backend: redis
  currency_singular: gem
  currency_plural: gems
redis:
  addr: localhost:6379
demo:
  player: SirTZN
  deposit_amount: 1000
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "vaultcc", cfg.App.Name)
	assert.Equal(t, BackendRedis, cfg.Economy.Backend)
	assert.Equal(t, "gem", cfg.Economy.CurrencySingular)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "SirTZN", cfg.Demo.Player)
	assert.Equal(t, 1000.0, cfg.Demo.DepositAmount)
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, `
app:
  name: vaultcc
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendMock, cfg.Economy.Backend)
	assert.Equal(t, "dollar", cfg.Economy.CurrencySingular)
	assert.Equal(t, "dollars", cfg.Economy.CurrencyPlural)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
economy:
  backend: mock
redis:
  addr: localhost:6379
mysql:
  port: 3306
demo:
  player: SirTZN
`)

	t.Setenv(EnvEconomyBackend, "mysql")
	t.Setenv(EnvRedisAddr, "redis:6380")
	t.Setenv(EnvMySQLPort, "3307")
	t.Setenv(EnvDemoPlayer, "Alice")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendMySQL, cfg.Economy.Backend)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 3307, cfg.MySQL.Port)
	assert.Equal(t, "Alice", cfg.Demo.Player)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
