package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
	mysqlpkg "github.com/automationmc/vaultcc/pkg/mysql"
)

// Account GORM 模型：玩家個人帳戶
type Account struct {
	PlayerID  string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:64;index"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bank GORM 模型：具名的共享帳戶
type Bank struct {
	Name      string          `gorm:"primaryKey;size:64"`
	OwnerID   string          `gorm:"size:36"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Economy 是以 MySQL 為後端的經濟 provider。
// 餘額以 decimal 欄位持久化，存提款在資料庫交易中以行鎖保護。
type Economy struct {
	client   *mysqlpkg.Client
	singular string
	plural   string
}

// NewEconomy 建立 MySQL Economy 並執行 schema migration
func NewEconomy(client *mysqlpkg.Client, singular, plural string) (*Economy, error) {
	if err := client.DB().AutoMigrate(&Account{}, &Bank{}); err != nil {
		return nil, fmt.Errorf("migrate economy schema: %w", err)
	}
	return &Economy{
		client:   client,
		singular: singular,
		plural:   plural,
	}, nil
}

// GetBalance 取得玩家餘額，未知玩家視為 0
func (e *Economy) GetBalance(ctx context.Context, player *domain.OfflinePlayer) (float64, error) {
	var acct Account
	err := e.client.DB().WithContext(ctx).Where("player_id = ?", player.ID.String()).First(&acct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return acct.Balance.InexactFloat64(), nil
}

// HasAccount 檢查玩家是否已有帳戶
func (e *Economy) HasAccount(ctx context.Context, player *domain.OfflinePlayer) (bool, error) {
	var count int64
	err := e.client.DB().WithContext(ctx).Model(&Account{}).
		Where("player_id = ?", player.ID.String()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DepositPlayer 存款，玩家不存在時自動建立帳戶
func (e *Economy) DepositPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	if amount < 0 {
		balance, _ := e.GetBalance(ctx, player)
		return &ports.EconomyResult{
			ErrorMessage: "cannot deposit negative funds",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	var result *ports.EconomyResult
	err := e.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := lockAccount(tx, player)
		if err != nil {
			return err
		}

		acct.Balance = acct.Balance.Add(decimal.NewFromFloat(amount))
		if err := tx.Save(acct).Error; err != nil {
			return err
		}

		result = &ports.EconomyResult{
			TransactionSuccess: true,
			Amount:             amount,
			Balance:            acct.Balance.InexactFloat64(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	return result, nil
}

// WithdrawPlayer 提款，餘額不足時不扣款
func (e *Economy) WithdrawPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	if amount < 0 {
		balance, _ := e.GetBalance(ctx, player)
		return &ports.EconomyResult{
			ErrorMessage: "cannot withdraw negative funds",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	want := decimal.NewFromFloat(amount)

	var result *ports.EconomyResult
	err := e.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		acct, err := lockAccount(tx, player)
		if err != nil {
			return err
		}

		if acct.Balance.LessThan(want) {
			result = &ports.EconomyResult{
				ErrorMessage: ports.ErrInsufficientFunds.Error(),
				Amount:       amount,
				Balance:      acct.Balance.InexactFloat64(),
			}
			return nil
		}

		acct.Balance = acct.Balance.Sub(want)
		if err := tx.Save(acct).Error; err != nil {
			return err
		}

		result = &ports.EconomyResult{
			TransactionSuccess: true,
			Amount:             amount,
			Balance:            acct.Balance.InexactFloat64(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	return result, nil
}

// Has 檢查玩家餘額是否足夠
func (e *Economy) Has(ctx context.Context, player *domain.OfflinePlayer, amount float64) (bool, error) {
	balance, err := e.GetBalance(ctx, player)
	if err != nil {
		return false, err
	}
	return balance >= amount, nil
}

// CreateBank 建立一個銀行帳戶
func (e *Economy) CreateBank(ctx context.Context, bankName string, owner *domain.OfflinePlayer) (*ports.EconomyResult, error) {
	var result *ports.EconomyResult
	err := e.client.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Bank
		err := tx.Where("name = ?", bankName).First(&existing).Error
		if err == nil {
			result = &ports.EconomyResult{ErrorMessage: "bank already exists"}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		bank := Bank{
			Name:    bankName,
			OwnerID: owner.ID.String(),
			Balance: decimal.Zero,
		}
		if err := tx.Create(&bank).Error; err != nil {
			return err
		}

		result = &ports.EconomyResult{TransactionSuccess: true}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}
	return result, nil
}

// BankBalance 取得銀行帳戶餘額
func (e *Economy) BankBalance(ctx context.Context, bankName string) (float64, error) {
	var bank Bank
	err := e.client.DB().WithContext(ctx).Where("name = ?", bankName).First(&bank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ports.ErrBankNotFound
		}
		return 0, err
	}
	return bank.Balance.InexactFloat64(), nil
}

// Format 格式化金額
func (e *Economy) Format(amount float64) string {
	unit := e.plural
	if amount == 1 {
		unit = e.singular
	}
	return fmt.Sprintf("%.2f %s", amount, unit)
}

// CurrencyNameSingular 取得貨幣單數名稱
func (e *Economy) CurrencyNameSingular() string { return e.singular }

// CurrencyNamePlural 取得貨幣複數名稱
func (e *Economy) CurrencyNamePlural() string { return e.plural }

// lockAccount 以 FOR UPDATE 鎖定玩家帳戶列，不存在時先建立
func lockAccount(tx *gorm.DB, player *domain.OfflinePlayer) (*Account, error) {
	var acct Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("player_id = ?", player.ID.String()).First(&acct).Error
	if err == nil {
		return &acct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	acct = Account{
		PlayerID: player.ID.String(),
		Name:     player.Name,
		Balance:  decimal.Zero,
	}
	if err := tx.Create(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

var _ ports.EconomyService = (*Economy)(nil)
