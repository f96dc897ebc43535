package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
	"github.com/automationmc/vaultcc/internal/host"
)

// PluginVault 是橋接外掛在 PluginManager 中的名稱
const PluginVault = "Vault"

var (
	errNoProvider = errors.New("no economy provider bound")

	ctxType     = reflect.TypeOf((*context.Context)(nil)).Elem()
	playerType  = reflect.TypeOf((*domain.OfflinePlayer)(nil))
	float64Type = reflect.TypeOf(float64(0))
	stringType  = reflect.TypeOf("")
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Manager 以反映 (reflection) 的方式包裝外部經濟外掛的操作，
// 讓呼叫端不需在編譯期依賴任何經濟外掛的型別。
//
// 綁定在建構時一次性完成，之後不可變：若 provider 之後消失或更換，
// Manager 不會重新綁定 (已知限制)。所有公開操作都回傳
// TransactionResponse，不會向外拋出錯誤或 panic。
type Manager struct {
	provider     any
	providerType reflect.Type
	players      ports.PlayerRegistry
	logger       *slog.Logger
}

// NewManager 建立並綁定 Vault 經濟橋接。
// 綁定失敗 (找不到 Vault 外掛或 economy 註冊) 時仍回傳可用的 Manager，
// 後續操作會快速失敗並回傳失敗的 TransactionResponse。
func NewManager(plugins *host.PluginManager, services *host.ServicesManager, players ports.PlayerRegistry, logger *slog.Logger) *Manager {
	m := &Manager{
		players: players,
		logger:  logger,
	}
	m.setupEconomy(plugins, services)
	return m
}

// setupEconomy 在啟動時一次性尋找經濟 provider。
// 任何一步失敗只記錄並保持未綁定，初始化永遠不會向外失敗。
func (m *Manager) setupEconomy(plugins *host.PluginManager, services *host.ServicesManager) {
	defer func() {
		if r := recover(); r != nil {
			m.provider = nil
			m.providerType = nil
			m.logger.Error("Error setting up economy connection", "panic", r)
		}
	}()

	if plugins.Plugin(PluginVault) == nil {
		m.logger.Error("Vault plugin not found. Please ensure Vault is installed.")
		return
	}

	reg := services.Registration(host.CapabilityEconomy)
	if reg == nil {
		m.logger.Error("No economy provider found! Make sure an economy plugin is installed.")
		return
	}
	if reg.Provider == nil {
		m.logger.Error("Economy provider is nil!")
		return
	}

	m.provider = reg.Provider
	m.providerType = reflect.TypeOf(reg.Provider)

	m.logger.Info("Successfully connected to Vault economy!",
		"plugin", reg.Plugin,
		"provider", m.providerType.String(),
	)
}

// Bound 回報是否已成功綁定經濟 provider
func (m *Manager) Bound() bool {
	return m.provider != nil
}

// GetPlayerBalance 取得玩家餘額
func (m *Manager) GetPlayerBalance(ctx context.Context, playerName string) domain.TransactionResponse {
	val, err := m.invokePlayerOp(ctx, "GetBalance", playerName)
	if err != nil {
		m.logger.Error("Error getting player balance", "player", playerName, "error", err)
		return failureResponse(err, 0, 0)
	}

	balance, ok := asFloat(val)
	if !ok {
		err := fmt.Errorf("unexpected balance type %T", val)
		m.logger.Error("Error getting player balance", "player", playerName, "error", err)
		return failureResponse(err, 0, 0)
	}
	return domain.TransactionResponse{Success: true, Balance: balance}
}

// PlayerHasAccount 檢查玩家是否已有帳戶，結果以 Success 欄位表示
func (m *Manager) PlayerHasAccount(ctx context.Context, playerName string) domain.TransactionResponse {
	val, err := m.invokePlayerOp(ctx, "HasAccount", playerName)
	if err != nil {
		m.logger.Error("Error checking if player has account", "player", playerName, "error", err)
		return failureResponse(err, 0, 0)
	}

	has, ok := asBool(val)
	if !ok {
		err := fmt.Errorf("unexpected account check type %T", val)
		m.logger.Error("Error checking if player has account", "player", playerName, "error", err)
		return failureResponse(err, 0, 0)
	}
	return domain.TransactionResponse{Success: has}
}

// DepositPlayer 存款到玩家帳戶
func (m *Manager) DepositPlayer(ctx context.Context, playerName string, amount float64) domain.TransactionResponse {
	val, err := m.invokeAmountOp(ctx, "DepositPlayer", playerName, amount)
	if err != nil {
		m.logger.Error("Error depositing to player account", "player", playerName, "error", err)
		return failureResponse(err, amount, m.GetPlayerBalance(ctx, playerName).Balance)
	}
	return normalizeResponse(val)
}

// WithdrawPlayer 從玩家帳戶提款
func (m *Manager) WithdrawPlayer(ctx context.Context, playerName string, amount float64) domain.TransactionResponse {
	val, err := m.invokeAmountOp(ctx, "WithdrawPlayer", playerName, amount)
	if err != nil {
		m.logger.Error("Error withdrawing from player account", "player", playerName, "error", err)
		return failureResponse(err, amount, m.GetPlayerBalance(ctx, playerName).Balance)
	}
	return normalizeResponse(val)
}

// Has 檢查玩家餘額是否足夠，結果以 Success 欄位表示
func (m *Manager) Has(ctx context.Context, playerName string, amount float64) domain.TransactionResponse {
	val, err := m.invokeAmountOp(ctx, "Has", playerName, amount)
	if err != nil {
		m.logger.Error("Error checking if player has amount", "player", playerName, "error", err)
		return failureResponse(err, amount, 0)
	}

	has, ok := asBool(val)
	if !ok {
		err := fmt.Errorf("unexpected sufficiency check type %T", val)
		m.logger.Error("Error checking if player has amount", "player", playerName, "error", err)
		return failureResponse(err, amount, 0)
	}

	balance := m.GetPlayerBalance(ctx, playerName).Balance
	return domain.TransactionResponse{Success: has, Amount: amount, Balance: balance}
}

// CreateBank 建立一個銀行帳戶
func (m *Manager) CreateBank(ctx context.Context, bankName, ownerName string) domain.TransactionResponse {
	fail := func(err error) domain.TransactionResponse {
		m.logger.Error("Error creating bank account", "bank", bankName, "error", err)
		return failureResponse(err, 0, 0)
	}

	fn, err := m.lookupMethod("CreateBank", ctxType, stringType, playerType)
	if err != nil {
		return fail(err)
	}
	owner, err := m.players.Resolve(ctx, ownerName)
	if err != nil {
		return fail(err)
	}
	val, err := invoke(fn, ctx, bankName, owner)
	if err != nil {
		return fail(err)
	}
	return normalizeResponse(val)
}

// GetBankBalance 取得銀行帳戶餘額
func (m *Manager) GetBankBalance(ctx context.Context, bankName string) domain.TransactionResponse {
	fail := func(err error) domain.TransactionResponse {
		m.logger.Error("Error getting bank balance", "bank", bankName, "error", err)
		return failureResponse(err, 0, 0)
	}

	fn, err := m.lookupMethod("BankBalance", ctxType, stringType)
	if err != nil {
		return fail(err)
	}
	val, err := invoke(fn, ctx, bankName)
	if err != nil {
		return fail(err)
	}

	balance, ok := asFloat(val)
	if !ok {
		return fail(fmt.Errorf("unexpected bank balance type %T", val))
	}
	return domain.TransactionResponse{Success: true, Balance: balance}
}

// Format 依 provider 的設定格式化金額。
// 這是純外觀性操作：任何失敗都退回固定的兩位小數格式，不會回報錯誤。
func (m *Manager) Format(amount float64) string {
	fn, err := m.lookupMethod("Format", float64Type)
	if err == nil {
		if val, callErr := invoke(fn, amount); callErr == nil {
			if s, ok := asString(val); ok {
				return s
			}
		} else {
			m.logger.Error("Error formatting amount", "error", callErr)
		}
	}
	return fmt.Sprintf("%.2f", amount)
}

// CurrencyNameSingular 取得貨幣單數名稱，失敗時退回 "dollar"
func (m *Manager) CurrencyNameSingular() string {
	return m.currencyName("CurrencyNameSingular", "dollar")
}

// CurrencyNamePlural 取得貨幣複數名稱，失敗時退回 "dollars"
func (m *Manager) CurrencyNamePlural() string {
	return m.currencyName("CurrencyNamePlural", "dollars")
}

func (m *Manager) currencyName(method, fallback string) string {
	fn, err := m.lookupMethod(method)
	if err == nil {
		if val, callErr := invoke(fn); callErr == nil {
			if s, ok := asString(val); ok {
				return s
			}
		} else {
			m.logger.Error("Error getting currency name", "error", callErr)
		}
	}
	return fallback
}

// invokePlayerOp 執行 (ctx, player) 簽章的操作
func (m *Manager) invokePlayerOp(ctx context.Context, method, playerName string) (any, error) {
	fn, err := m.lookupMethod(method, ctxType, playerType)
	if err != nil {
		return nil, err
	}
	player, err := m.players.Resolve(ctx, playerName)
	if err != nil {
		return nil, err
	}
	return invoke(fn, ctx, player)
}

// invokeAmountOp 執行 (ctx, player, amount) 簽章的操作
func (m *Manager) invokeAmountOp(ctx context.Context, method, playerName string, amount float64) (any, error) {
	fn, err := m.lookupMethod(method, ctxType, playerType, float64Type)
	if err != nil {
		return nil, err
	}
	player, err := m.players.Resolve(ctx, playerName)
	if err != nil {
		return nil, err
	}
	return invoke(fn, ctx, player, amount)
}

// lookupMethod 在綁定的 provider 上依名稱尋找方法並驗證參數簽章
func (m *Manager) lookupMethod(name string, in ...reflect.Type) (reflect.Value, error) {
	if m.provider == nil {
		return reflect.Value{}, errNoProvider
	}

	fn := reflect.ValueOf(m.provider).MethodByName(name)
	if !fn.IsValid() {
		return reflect.Value{}, fmt.Errorf("method %s not found on %s", name, m.providerType)
	}

	ft := fn.Type()
	if ft.NumIn() != len(in) {
		return reflect.Value{}, fmt.Errorf("method %s on %s: want %d args, has %d", name, m.providerType, len(in), ft.NumIn())
	}
	for i, want := range in {
		if !want.AssignableTo(ft.In(i)) {
			return reflect.Value{}, fmt.Errorf("method %s on %s: arg %d wants %s, has %s", name, m.providerType, i, want, ft.In(i))
		}
	}
	return fn, nil
}

// invoke 呼叫 provider 方法，吸收 panic 並分離 error 回傳值。
// 回傳第一個非 error 的回傳值 (若無則為 nil)。
func invoke(fn reflect.Value, args ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("provider call panicked: %v", r)
		}
	}()

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		in[i] = reflect.ValueOf(arg)
	}

	out := fn.Call(in)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Type().Implements(errorType) {
			if !out[i].IsNil() {
				return nil, out[i].Interface().(error)
			}
			continue
		}
		result = out[i].Interface()
	}
	return result, nil
}

func failureResponse(err error, amount, balance float64) domain.TransactionResponse {
	return domain.TransactionResponse{
		Success:      false,
		ErrorMessage: err.Error(),
		Amount:       amount,
		Balance:      balance,
	}
}
