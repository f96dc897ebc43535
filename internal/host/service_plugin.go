package host

import "context"

// ServicePlugin 是一個在啟用時向 ServicesManager 註冊能力、
// 停用時移除註冊的極簡外掛。經濟 provider 後端都透過它掛載。
type ServicePlugin struct {
	name       string
	capability string
	provider   any
	priority   Priority
	services   *ServicesManager
}

// NewServicePlugin 建立 Service Plugin
func NewServicePlugin(name, capability string, provider any, services *ServicesManager, priority Priority) *ServicePlugin {
	return &ServicePlugin{
		name:       name,
		capability: capability,
		provider:   provider,
		priority:   priority,
		services:   services,
	}
}

func (p *ServicePlugin) Name() string { return p.name }

func (p *ServicePlugin) Enable(ctx context.Context) error {
	p.services.Register(p.capability, p.provider, p.name, p.priority)
	return nil
}

func (p *ServicePlugin) Disable(ctx context.Context) error {
	p.services.Unregister(p.name)
	return nil
}

var _ Plugin = (*ServicePlugin)(nil)
