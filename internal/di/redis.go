package di

import (
	"github.com/automationmc/vaultcc/internal/config"
	pkgRedis "github.com/automationmc/vaultcc/pkg/redis"
)

// InitializeRedis initializes the Redis client with config
func InitializeRedis(cfg *config.Config) (*pkgRedis.Client, error) {
	return pkgRedis.NewClient(pkgRedis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
