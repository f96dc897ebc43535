package ports

import "errors"

// 定義 Ports 層級通用的錯誤
var (
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBankNotFound      = errors.New("bank not found")
)
