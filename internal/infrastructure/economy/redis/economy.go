package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
	"github.com/automationmc/vaultcc/pkg/redis"
)

const (
	// Key Pattern: economy:balances -> Hash of PlayerID -> Balance
	KeyBalances = "economy:balances"
	// Key Pattern: economy:banks -> Hash of BankName -> Balance
	KeyBanks = "economy:banks"
	// Key Pattern: economy:lock:{PlayerID} -> 提款期間的短期鎖
	KeyWithdrawLock = "economy:lock:%s"
	// ChannelTransactions 交易事件發佈頻道 (外部稽核用，無訂閱者也無妨)
	ChannelTransactions = "economy:transactions"

	withdrawLockTTL = 3 * time.Second
)

// Economy 是以 Redis 為後端的經濟 provider。
// 餘額存放於 hash，存提款透過 HIncrByFloat 原子更新，
// 提款前以分散式鎖保護「檢查再扣款」的流程。
type Economy struct {
	rds      *redis.Client
	singular string
	plural   string
}

// NewEconomy 建立 Redis Economy
func NewEconomy(rds *redis.Client, singular, plural string) *Economy {
	return &Economy{
		rds:      rds,
		singular: singular,
		plural:   plural,
	}
}

// GetBalance 取得玩家餘額，未知玩家視為 0
func (e *Economy) GetBalance(ctx context.Context, player *domain.OfflinePlayer) (float64, error) {
	return e.hashBalance(ctx, KeyBalances, player.ID.String())
}

// HasAccount 檢查玩家是否已有帳戶
func (e *Economy) HasAccount(ctx context.Context, player *domain.OfflinePlayer) (bool, error) {
	return e.rds.HExists(ctx, KeyBalances, player.ID.String())
}

// DepositPlayer 存款 (原子操作)
func (e *Economy) DepositPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	if amount < 0 {
		balance, _ := e.GetBalance(ctx, player)
		return &ports.EconomyResult{
			ErrorMessage: "cannot deposit negative funds",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	balance, err := e.rds.HIncrByFloat(ctx, KeyBalances, player.ID.String(), amount)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	e.publishEvent(ctx, "deposit", player, amount, balance)
	return &ports.EconomyResult{TransactionSuccess: true, Amount: amount, Balance: balance}, nil
}

// WithdrawPlayer 提款。
// 先取得玩家專屬的短期鎖，再檢查餘額並扣款，避免並行提款造成透支。
func (e *Economy) WithdrawPlayer(ctx context.Context, player *domain.OfflinePlayer, amount float64) (*ports.EconomyResult, error) {
	balance, err := e.GetBalance(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	if amount < 0 {
		return &ports.EconomyResult{
			ErrorMessage: "cannot withdraw negative funds",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	lockKey := fmt.Sprintf(KeyWithdrawLock, player.ID)
	token := uuid.New().String()

	locked, err := e.rds.AcquireLock(ctx, lockKey, token, withdrawLockTTL)
	if err != nil {
		return nil, fmt.Errorf("withdraw: acquire lock: %w", err)
	}
	if !locked {
		return &ports.EconomyResult{
			ErrorMessage: "account is busy, try again",
			Amount:       amount,
			Balance:      balance,
		}, nil
	}
	defer func() { _ = e.rds.ReleaseLock(ctx, lockKey, token) }()

	// 鎖內重新讀取，鎖外的讀值可能已過期
	balance, err = e.GetBalance(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}
	if balance < amount {
		return &ports.EconomyResult{
			ErrorMessage: ports.ErrInsufficientFunds.Error(),
			Amount:       amount,
			Balance:      balance,
		}, nil
	}

	balance, err = e.rds.HIncrByFloat(ctx, KeyBalances, player.ID.String(), -amount)
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	e.publishEvent(ctx, "withdraw", player, amount, balance)
	return &ports.EconomyResult{TransactionSuccess: true, Amount: amount, Balance: balance}, nil
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
	exists, err := e.rds.HExists(ctx, KeyBanks, bankName)
	if err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}
	if exists {
		return &ports.EconomyResult{ErrorMessage: "bank already exists"}, nil
	}

	if err := e.rds.HSet(ctx, KeyBanks, bankName, "0"); err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}
	return &ports.EconomyResult{TransactionSuccess: true}, nil
}

// BankBalance 取得銀行帳戶餘額
func (e *Economy) BankBalance(ctx context.Context, bankName string) (float64, error) {
	val, err := e.rds.HGet(ctx, KeyBanks, bankName)
	if err != nil {
		if redis.IsNil(err) {
			return 0, ports.ErrBankNotFound
		}
		return 0, err
	}
	return strconv.ParseFloat(val, 64)
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

func (e *Economy) hashBalance(ctx context.Context, key, field string) (float64, error) {
	val, err := e.rds.HGet(ctx, key, field)
	if err != nil {
		if redis.IsNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseFloat(val, 64)
}

// publishEvent 發佈交易事件供外部稽核，失敗不影響交易本身
func (e *Economy) publishEvent(ctx context.Context, kind string, player *domain.OfflinePlayer, amount, balance float64) {
	event := fmt.Sprintf("%s:%s:%.4f:%.4f", kind, player.ID, amount, balance)
	_ = e.rds.Publish(ctx, ChannelTransactions, event)
}

var _ ports.EconomyService = (*Economy)(nil)
