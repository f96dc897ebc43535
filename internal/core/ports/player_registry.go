package ports

import (
	"context"

	"github.com/automationmc/vaultcc/internal/core/domain"
)

// PlayerRegistry 定義玩家身分解析介面。
// facade 本身不快取身分解析結果，每次操作都透過此介面解析。
type PlayerRegistry interface {
	// Resolve 將顯示名稱解析為離線玩家身分
	Resolve(ctx context.Context, name string) (*domain.OfflinePlayer, error)
}
