package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
)

// MockEconomy 模擬經濟 provider
type MockEconomy struct {
	mu       sync.Mutex
	balances map[string]float64
	banks    map[string]float64
	singular string
	plural   string
}

func NewMockEconomy(singular, plural string) *MockEconomy {
	return &MockEconomy{
		balances: make(map[string]float64),
		banks:    make(map[string]float64),
		singular: singular,
		plural:   plural,
	}
}

func (m *MockEconomy) GetBalance(ctx context.Context, player *domain.OfflinePlayer) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.touch(player), nil
}

func (m *MockEconomy) HasAccount(ctx context.Context, player *domain.OfflinePlayer) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.balances[player.ID.String()]
	return ok, nil
}

func (m *MockEconomy) DepositPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if amount < 0 {
		return &ports.EconomyResult{
			ErrorMessage: "cannot deposit negative funds",
			Amount:       amount,
			Balance:      m.touch(player),
		}, nil
	}

	balance := m.touch(player) + amount
	m.balances[player.ID.String()] = balance
	return &ports.EconomyResult{TransactionSuccess: true, Amount: amount, Balance: balance}, nil
}

func (m *MockEconomy) WithdrawPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance := m.touch(player)
	if amount < 0 {
		return &ports.EconomyResult{
			ErrorMessage: "cannot withdraw negative funds",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}
	if balance < amount {
		return &ports.EconomyResult{
			ErrorMessage: ports.ErrInsufficientFunds.Error(),
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	balance -= amount
	m.balances[player.ID.String()] = balance
	return &ports.EconomyResult{TransactionSuccess: true, Amount: amount, Balance: balance}, nil
}

func (m *MockEconomy) Has(ctx context.Context, player *domain.OfflinePlayer, amount float64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.touch(player) >= amount, nil
}

func (m *MockEconomy) CreateBank(ctx context.Context, bankName string, owner *domain.OfflinePlayer) (*ports.EconomyResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.banks[bankName]; ok {
		return &ports.EconomyResult{ErrorMessage: "bank already exists"}, nil
	}
	m.banks[bankName] = 0
	return &ports.EconomyResult{TransactionSuccess: true}, nil
}

func (m *MockEconomy) BankBalance(ctx context.Context, bankName string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.banks[bankName]
	if !ok {
		return 0, ports.ErrBankNotFound
	}
	return balance, nil
}

func (m *MockEconomy) Format(amount float64) string {
	unit := m.plural
	if amount == 1 {
		unit = m.singular
	}
	return fmt.Sprintf("%.2f %s", amount, unit)
}

func (m *MockEconomy) CurrencyNameSingular() string { return m.singular }
func (m *MockEconomy) CurrencyNamePlural() string   { return m.plural }

// touch 取得玩家餘額，首次出現的玩家給予初始資金。
// 模擬: 這是一種"富豪"錢包，每個新玩家都有 1,000,000。
// 呼叫端必須持有 m.mu。
func (m *MockEconomy) touch(player *domain.OfflinePlayer) float64 {
	key := player.ID.String()
	if balance, ok := m.balances[key]; ok {
		return balance
	}
	m.balances[key] = 1000000
	return m.balances[key]
}

var _ ports.EconomyService = (*MockEconomy)(nil)
