package players

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
)

// offlineNamespace 是離線玩家 UUID 的名稱前綴，沿用離線模式的慣例
const offlineNamespace = "OfflinePlayer:"

// Registry 以名稱推導離線玩家身分。
// 同一名稱永遠解析出同一個 UUID (以名稱做 MD5 name-based UUID)，
// 解析結果會被快取，但 facade 端不依賴此快取行為。
type Registry struct {
	mu    sync.RWMutex
	known map[string]*domain.OfflinePlayer
}

// NewRegistry 建立 Player Registry
func NewRegistry() *Registry {
	return &Registry{
		known: make(map[string]*domain.OfflinePlayer),
	}
}

// Resolve 將顯示名稱解析為離線玩家身分
func (r *Registry) Resolve(ctx context.Context, name string) (*domain.OfflinePlayer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ports.ErrInvalidPlayerName
	}

	r.mu.RLock()
	if player, ok := r.known[name]; ok {
		r.mu.RUnlock()
		return player, nil
	}
	r.mu.RUnlock()

	player := &domain.OfflinePlayer{
		ID:   uuid.NewMD5(uuid.Nil, []byte(offlineNamespace+name)),
		Name: name,
	}

	r.mu.Lock()
	r.known[name] = player
	r.mu.Unlock()

	return player, nil
}

var _ ports.PlayerRegistry = (*Registry)(nil)
