package vault

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/automationmc/vaultcc/internal/core/domain"
)

// structuredResult 是標準形狀的複合結果 (Vault EconomyResponse 風格)
type structuredResult struct {
	TransactionSuccess bool
	ErrorMessage       string
	Amount             float64
	Balance            float64
}

// plainResult 沒有任何可辨識的 success 欄位
type plainResult struct {
	Amount  float64
	Balance float64
}

// accessorResult 欄位皆未匯出，只能透過 Get 存取方法讀取
type accessorResult struct {
	success bool
	balance decimal.Decimal
}

func (r accessorResult) GetSuccess() bool            { return r.success }
func (r accessorResult) GetBalance() decimal.Decimal { return r.balance }
func (r accessorResult) GetErrorMessage() string     { return "not enough funds" }

// shadowedResult 同時有欄位與存取方法，欄位應優先
type shadowedResult struct {
	Amount float64
}

func (shadowedResult) GetAmount() float64 { return 999 }

// fallbackNameResult 只有次要候選名稱的欄位
type fallbackNameResult struct {
	Value          float64
	TransferAmount float64
	NewBalance     int64
}

func TestNormalizeResponse_BoolResult(t *testing.T) {
	t.Run("true", func(t *testing.T) {
		resp := normalizeResponse(true)
		assert.Equal(t, domain.TransactionResponse{Success: true}, resp)
	})

	t.Run("false", func(t *testing.T) {
		resp := normalizeResponse(false)
		assert.Equal(t, domain.TransactionResponse{Success: false}, resp)
	})
}

func TestNormalizeResponse_Structured(t *testing.T) {
	raw := &structuredResult{
		TransactionSuccess: false,
		ErrorMessage:       "insufficient funds",
		Amount:             50,
		Balance:            20,
	}

	resp := normalizeResponse(raw)

	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient funds", resp.ErrorMessage)
	assert.Equal(t, 50.0, resp.Amount)
	assert.Equal(t, 20.0, resp.Balance)
}

func TestNormalizeResponse_DefaultSuccess(t *testing.T) {
	raw := &plainResult{Amount: 10, Balance: 110}

	resp := normalizeResponse(raw)
	assert.True(t, resp.Success, "a compound result without a success field is assumed successful")
	assert.Empty(t, resp.ErrorMessage)
	assert.Equal(t, 10.0, resp.Amount)
	assert.Equal(t, 110.0, resp.Balance)

	// 重複正規化同一個物件必須得到一樣的結果
	assert.Equal(t, resp, normalizeResponse(raw))
}

func TestNormalizeResponse_AccessorFallback(t *testing.T) {
	raw := accessorResult{success: false, balance: decimal.NewFromFloat(12.5)}

	resp := normalizeResponse(raw)

	assert.False(t, resp.Success)
	assert.Equal(t, "not enough funds", resp.ErrorMessage)
	assert.Equal(t, 12.5, resp.Balance)
}

func TestNormalizeResponse_FieldBeforeAccessor(t *testing.T) {
	resp := normalizeResponse(shadowedResult{Amount: 42})
	assert.Equal(t, 42.0, resp.Amount, "direct field must win over the Get accessor")
}

func TestNormalizeResponse_CandidateOrder(t *testing.T) {
	// Amount 缺席時輪到 Value，TransferAmount 不應被讀到；
	// Balance 缺席時輪到 NewBalance (整數型別也要能轉換)。
	raw := fallbackNameResult{Value: 7, TransferAmount: 99, NewBalance: 300}

	resp := normalizeResponse(raw)

	assert.True(t, resp.Success)
	assert.Equal(t, 7.0, resp.Amount)
	assert.Equal(t, 300.0, resp.Balance)
}

func TestNormalizeResponse_UnrecognizedShapes(t *testing.T) {
	optimistic := domain.TransactionResponse{Success: true}

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, optimistic, normalizeResponse(nil))
	})

	t.Run("typed nil pointer", func(t *testing.T) {
		assert.Equal(t, optimistic, normalizeResponse((*structuredResult)(nil)))
	})

	t.Run("plain int", func(t *testing.T) {
		assert.Equal(t, optimistic, normalizeResponse(42))
	})
}
