package mock

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/automationmc/vaultcc/internal/core/domain"
	"github.com/automationmc/vaultcc/internal/core/ports"
)

func testPlayer(name string) *domain.OfflinePlayer {
	return &domain.OfflinePlayer{
		ID:   uuid.NewMD5(uuid.Nil, []byte("OfflinePlayer:"+name)),
		Name: name,
	}
}

func TestMockEconomy(t *testing.T) {
	ctx := context.Background()
	econ := NewMockEconomy("coin", "coins")
	alice := testPlayer("Alice")

	t.Run("new players are rich", func(t *testing.T) {
		has, err := econ.HasAccount(ctx, alice)
		assert.NoError(t, err)
		assert.False(t, has, "no account before first touch")

		balance, err := econ.GetBalance(ctx, alice)
		assert.NoError(t, err)
		assert.Equal(t, 1000000.0, balance)

		has, err = econ.HasAccount(ctx, alice)
		assert.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("deposit and withdraw", func(t *testing.T) {
		res, err := econ.DepositPlayer(ctx, alice, 250)
		assert.NoError(t, err)
		assert.True(t, res.TransactionSuccess)
		assert.Equal(t, 1000250.0, res.Balance)

		res, err = econ.WithdrawPlayer(ctx, alice, 250)
		assert.NoError(t, err)
		assert.True(t, res.TransactionSuccess)
		assert.Equal(t, 1000000.0, res.Balance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		res, err := econ.WithdrawPlayer(ctx, alice, 2000000)
		assert.NoError(t, err)
		assert.False(t, res.TransactionSuccess)
		assert.Equal(t, "insufficient funds", res.ErrorMessage)
		assert.Equal(t, 1000000.0, res.Balance)
	})

	t.Run("negative amounts rejected", func(t *testing.T) {
		res, err := econ.DepositPlayer(ctx, alice, -5)
		assert.NoError(t, err)
		assert.False(t, res.TransactionSuccess)

		res, err = econ.WithdrawPlayer(ctx, alice, -5)
		assert.NoError(t, err)
		assert.False(t, res.TransactionSuccess)
	})

	t.Run("sufficiency", func(t *testing.T) {
		has, err := econ.Has(ctx, alice, 999999)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = econ.Has(ctx, alice, 2000000)
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("banks", func(t *testing.T) {
		res, err := econ.CreateBank(ctx, "IronBank", alice)
		assert.NoError(t, err)
		assert.True(t, res.TransactionSuccess)

		res, err = econ.CreateBank(ctx, "IronBank", alice)
		assert.NoError(t, err)
		assert.False(t, res.TransactionSuccess)

		balance, err := econ.BankBalance(ctx, "IronBank")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, balance)

		_, err = econ.BankBalance(ctx, "NoSuchBank")
		assert.ErrorIs(t, err, ports.ErrBankNotFound)
	})

	t.Run("formatting", func(t *testing.T) {
		assert.Equal(t, "1.00 coin", econ.Format(1))
		assert.Equal(t, "12.34 coins", econ.Format(12.34))
		assert.Equal(t, "coin", econ.CurrencyNameSingular())
		assert.Equal(t, "coins", econ.CurrencyNamePlural())
	})
}
