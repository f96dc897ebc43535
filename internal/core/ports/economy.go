package ports

import (
	"context"

	"github.com/automationmc/vaultcc/internal/core/domain"
)

// EconomyResult 是 provider 回傳的複合交易結果。
// 欄位名稱沿用 Vault EconomyResponse 的慣例 (TransactionSuccess 等)，
// facade 端以欄位探測的方式讀取，不會直接依賴此型別。
type EconomyResult struct {
	TransactionSuccess bool    // 交易是否成功
	ErrorMessage       string  // 失敗原因 (成功時為空)
	Amount             float64 // 本次交易金額
	Balance            float64 // 交易後餘額
}

// EconomyService 定義經濟 provider 需實作的標準操作介面。
// 任何實作此介面的 provider 都可以註冊到 ServicesManager 的
// economy capability，讓 vault.Manager 在執行期綁定。
type EconomyService interface {
	// GetBalance 取得玩家餘額
	GetBalance(ctx context.Context, player *domain.OfflinePlayer) (float64, error)

	// HasAccount 檢查玩家是否已有帳戶
	HasAccount(ctx context.Context, player *domain.OfflinePlayer) (bool, error)

	// DepositPlayer 存款 (增加餘額)
	DepositPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*EconomyResult, error)

	// WithdrawPlayer 提款 (扣除餘額)
	WithdrawPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*EconomyResult, error)

	// Has 檢查玩家餘額是否足夠
	Has(ctx context.Context, player *domain.OfflinePlayer, amount float64) (bool, error)

	// CreateBank 建立一個銀行帳戶 (共享餘額，非個人餘額)
	CreateBank(ctx context.Context, bankName string, owner *domain.OfflinePlayer) (*EconomyResult, error)

	// BankBalance 取得銀行帳戶餘額
	BankBalance(ctx context.Context, bankName string) (float64, error)

	// Format 依 provider 的設定格式化金額
	Format(amount float64) string

	// CurrencyNameSingular 取得貨幣單數名稱
	CurrencyNameSingular() string

	// CurrencyNamePlural 取得貨幣複數名稱
	CurrencyNamePlural() string
}
