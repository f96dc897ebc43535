package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Plugin 定義掛載於 Host 的外掛生命週期。
// Enable/Disable 由 PluginManager 在伺服器啟動與關閉時呼叫。
type Plugin interface {
	Name() string
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
}

// BasePlugin 提供 Plugin 的預設空實作。
// 純標記性質的外掛 (例如 Vault 橋接本身) 可直接使用。
type BasePlugin struct {
	name string
}

func NewBasePlugin(name string) *BasePlugin {
	return &BasePlugin{name: name}
}

func (p *BasePlugin) Name() string                      { return p.name }
func (p *BasePlugin) Enable(ctx context.Context) error  { return nil }
func (p *BasePlugin) Disable(ctx context.Context) error { return nil }

// PluginManager 管理外掛的註冊與生命週期。
// 註冊順序即啟用順序，關閉時以相反順序停用。
type PluginManager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	logger  *slog.Logger
}

// NewPluginManager 建立 Plugin Manager
func NewPluginManager(logger *slog.Logger) *PluginManager {
	return &PluginManager{
		plugins: make(map[string]Plugin),
		logger:  logger,
	}
}

// Register 註冊一個外掛，名稱重複時回傳錯誤
func (m *PluginManager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.plugins[p.Name()]; exists {
		return fmt.Errorf("plugin %q already registered", p.Name())
	}
	m.plugins[p.Name()] = p
	m.order = append(m.order, p.Name())
	return nil
}

// Plugin 依名稱取得已註冊的外掛，不存在時回傳 nil
func (m *PluginManager) Plugin(name string) Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plugins[name]
}

// EnableAll 依註冊順序啟用所有外掛。
// 單一外掛啟用失敗只記錄並跳過，不會中斷其他外掛的啟用。
func (m *PluginManager) EnableAll(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.order {
		p := m.plugins[name]
		if err := p.Enable(ctx); err != nil {
			m.logger.Error("Failed to enable plugin", "plugin", name, "error", err)
			continue
		}
		m.logger.Info("Plugin enabled", "plugin", name)
	}
}

// DisableAll 以註冊的相反順序停用所有外掛
func (m *PluginManager) DisableAll(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.order) - 1; i >= 0; i-- {
		p := m.plugins[m.order[i]]
		if err := p.Disable(ctx); err != nil {
			m.logger.Error("Failed to disable plugin", "plugin", p.Name(), "error", err)
		}
	}
}
