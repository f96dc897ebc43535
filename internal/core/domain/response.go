package domain

// TransactionResponse 代表一次經濟操作的結果。
// 對應 Vault 的 EconomyResponse，但不直接依賴任何經濟外掛的型別。
// 建構後不可變；Amount/Balance 未知時為 0，呼叫端應將 0 視為「未知」
// 而非保證為零的餘額。
type TransactionResponse struct {
	Success      bool    // 操作是否成功
	ErrorMessage string  // 失敗原因 (僅在失敗時非空)
	Amount       float64 // 本次操作涉及的金額 (純查詢為 0)
	Balance      float64 // 操作後或查詢到的餘額 (best-effort)
}
