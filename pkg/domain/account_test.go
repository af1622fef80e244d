package domain_test

import (
	"testing"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount_Valid(t *testing.T) {
	a, err := domain.NewAccount(1, "1234567812345678", decimal.RequireFromString("1000.00"), "savings")
	require.NoError(t, err)
	assert.Equal(t, "1234567812345678", a.Number)
	assert.Equal(t, domain.AccountSavings, a.Type)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, uint(1), a.UserID)
}

func TestNewAccount_BadNumber(t *testing.T) {
	for _, number := range []string{"123", "", "12345678123456789", "12345678abcd5678"} {
		_, err := domain.NewAccount(1, number, decimal.Zero, "SAVINGS")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, "number %q", number)
	}
}

func TestNewAccount_NegativeBalance(t *testing.T) {
	_, err := domain.NewAccount(1, "1234567812345678", decimal.RequireFromString("-0.01"), "SAVINGS")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNewAccount_ZeroBalanceAllowed(t *testing.T) {
	_, err := domain.NewAccount(1, "1234567812345678", decimal.Zero, "CHECKING")
	assert.NoError(t, err)
}

func TestParseAccountType_ListsValidTypes(t *testing.T) {
	_, err := domain.ParseAccountType("GOLD")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "CHECKING, SAVINGS")
}

func TestParseAccountType_CaseInsensitive(t *testing.T) {
	got, err := domain.ParseAccountType("checking")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountChecking, got)
}
