package host

import "sync"

// CapabilityEconomy 是經濟服務的 capability 名稱。
// provider 外掛以此名稱註冊，vault.Manager 以此名稱查詢。
const CapabilityEconomy = "economy"

// Priority 定義服務註冊的優先權，數字越大優先權越高
type Priority int

const (
	PriorityLowest  Priority = 0
	PriorityLow     Priority = 1
	PriorityNormal  Priority = 2
	PriorityHigh    Priority = 3
	PriorityHighest Priority = 4
)

// Registration 代表一筆服務註冊紀錄
type Registration struct {
	Capability string   // capability 名稱 (例如 "economy")
	Provider   any      // 具體的服務實例，型別由註冊的外掛決定
	Plugin     string   // 註冊此服務的外掛名稱
	Priority   Priority // 註冊優先權
}

// ServicesManager 是 Host 提供的服務目錄：
// 將抽象的 capability 名稱映射到零或多個具體實作，
// 查詢時回傳優先權最高的一筆。
type ServicesManager struct {
	mu   sync.RWMutex
	regs map[string][]*Registration
}

// NewServicesManager 建立 Services Manager
func NewServicesManager() *ServicesManager {
	return &ServicesManager{
		regs: make(map[string][]*Registration),
	}
}

// Register 註冊一個 capability 的實作
func (s *ServicesManager) Register(capability string, provider any, plugin string, priority Priority) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.regs[capability] = append(s.regs[capability], &Registration{
		Capability: capability,
		Provider:   provider,
		Plugin:     plugin,
		Priority:   priority,
	})
}

// Registration 取得某 capability 優先權最高的註冊紀錄，
// 無任何註冊時回傳 nil。
func (s *ServicesManager) Registration(capability string) *Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *Registration
	for _, reg := range s.regs[capability] {
		if best == nil || reg.Priority > best.Priority {
			best = reg
		}
	}
	return best
}

// Unregister 移除某外掛的所有註冊紀錄
func (s *ServicesManager) Unregister(plugin string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for capability, regs := range s.regs {
		kept := regs[:0]
		for _, reg := range regs {
			if reg.Plugin != plugin {
				kept = append(kept, reg)
			}
		}
		s.regs[capability] = kept
	}
}
