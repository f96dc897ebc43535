package di

import (
	"fmt"

	"github.com/automationmc/vaultcc/internal/config"
	"github.com/automationmc/vaultcc/internal/core/ports"
	"github.com/automationmc/vaultcc/internal/host"
	mockEconomy "github.com/automationmc/vaultcc/internal/infrastructure/economy/mock"
	mysqlEconomy "github.com/automationmc/vaultcc/internal/infrastructure/economy/mysql"
	redisEconomy "github.com/automationmc/vaultcc/internal/infrastructure/economy/redis"
	"github.com/automationmc/vaultcc/internal/infrastructure/players"
	pkgMySQL "github.com/automationmc/vaultcc/pkg/mysql"
)

// ProvidePlayerRegistry creates the player identity registry
func ProvidePlayerRegistry() ports.PlayerRegistry {
	return players.NewRegistry()
}

// ProvideEconomyPlugin selects the economy provider backend based on config
// and wraps it in a host plugin that registers the economy capability on
// enable. The returned cleanup func releases backend connections.
func ProvideEconomyPlugin(cfg *config.Config, services *host.ServicesManager) (host.Plugin, func(), error) {
	singular := cfg.Economy.CurrencySingular
	plural := cfg.Economy.CurrencyPlural

	switch cfg.Economy.Backend {
	case config.BackendRedis:
		client, err := InitializeRedis(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis economy: %w", err)
		}
		provider := redisEconomy.NewEconomy(client, singular, plural)
		plugin := host.NewServicePlugin("redis-economy", host.CapabilityEconomy, provider, services, host.PriorityNormal)
		return plugin, func() { _ = client.Close() }, nil

	case config.BackendMySQL:
		client, err := pkgMySQL.NewClient(pkgMySQL.Config{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			DBName:   cfg.MySQL.DBName,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init mysql economy: %w", err)
		}
		provider, err := mysqlEconomy.NewEconomy(client, singular, plural)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("init mysql economy: %w", err)
		}
		plugin := host.NewServicePlugin("mysql-economy", host.CapabilityEconomy, provider, services, host.PriorityNormal)
		return plugin, func() { _ = client.Close() }, nil

	case config.BackendMock:
		provider := mockEconomy.NewMockEconomy(singular, plural)
		plugin := host.NewServicePlugin("mock-economy", host.CapabilityEconomy, provider, services, host.PriorityNormal)
		return plugin, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown economy backend: %q", cfg.Economy.Backend)
	}
}
