package host

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingPlugin 記錄生命週期呼叫順序
type recordingPlugin struct {
	name      string
	enableErr error
	calls     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Enable(ctx context.Context) error {
	if p.enableErr != nil {
		return p.enableErr
	}
	*p.calls = append(*p.calls, "enable:"+p.name)
	return nil
}

func (p *recordingPlugin) Disable(ctx context.Context) error {
	*p.calls = append(*p.calls, "disable:"+p.name)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPluginManager_Register(t *testing.T) {
	m := NewPluginManager(testLogger())

	if err := m.Register(NewBasePlugin("Vault")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := m.Register(NewBasePlugin("Vault")); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	if m.Plugin("Vault") == nil {
		t.Error("expected to find registered plugin")
	}
	if m.Plugin("Essentials") != nil {
		t.Error("expected unknown plugin lookup to return nil")
	}
}

func TestPluginManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewPluginManager(testLogger())

	var calls []string
	_ = m.Register(&recordingPlugin{name: "first", calls: &calls})
	_ = m.Register(&recordingPlugin{name: "broken", enableErr: errors.New("boom"), calls: &calls})
	_ = m.Register(&recordingPlugin{name: "second", calls: &calls})

	m.EnableAll(ctx)
	assert.Equal(t, []string{"enable:first", "enable:second"}, calls,
		"a failing plugin is skipped, the rest still enable in order")

	calls = calls[:0]
	m.DisableAll(ctx)
	assert.Equal(t, []string{"disable:second", "disable:broken", "disable:first"}, calls,
		"disable runs in reverse registration order")
}

func TestServicesManager_Registration(t *testing.T) {
	s := NewServicesManager()

	if s.Registration(CapabilityEconomy) != nil {
		t.Fatal("expected nil registration before any provider registers")
	}

	low := "low-provider"
	high := "high-provider"
	s.Register(CapabilityEconomy, low, "plugin-a", PriorityLow)
	s.Register(CapabilityEconomy, high, "plugin-b", PriorityHigh)

	reg := s.Registration(CapabilityEconomy)
	if reg == nil {
		t.Fatal("expected a registration")
	}
	assert.Equal(t, high, reg.Provider, "highest priority registration wins")
	assert.Equal(t, "plugin-b", reg.Plugin)
}

func TestServicesManager_Unregister(t *testing.T) {
	s := NewServicesManager()
	s.Register(CapabilityEconomy, "a", "plugin-a", PriorityHigh)
	s.Register(CapabilityEconomy, "b", "plugin-b", PriorityLow)

	s.Unregister("plugin-a")

	reg := s.Registration(CapabilityEconomy)
	if reg == nil {
		t.Fatal("expected remaining registration")
	}
	assert.Equal(t, "b", reg.Provider)

	s.Unregister("plugin-b")
	assert.Nil(t, s.Registration(CapabilityEconomy))
}

func TestServicePlugin(t *testing.T) {
	ctx := context.Background()
	s := NewServicesManager()
	provider := "economy-provider"

	p := NewServicePlugin("test-economy", CapabilityEconomy, provider, s, PriorityNormal)
	assert.Equal(t, "test-economy", p.Name())

	if err := p.Enable(ctx); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	reg := s.Registration(CapabilityEconomy)
	if reg == nil {
		t.Fatal("expected registration after enable")
	}
	assert.Equal(t, provider, reg.Provider)

	if err := p.Disable(ctx); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	assert.Nil(t, s.Registration(CapabilityEconomy), "disable removes the registration")
}
