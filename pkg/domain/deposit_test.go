package domain_test

import (
	"testing"
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateInterestRate(t *testing.T) {
	cases := []struct {
		rate string
		ok   bool
	}{
		{"5.25", true},
		{"999.99", true},
		{"0.01", true},
		{"0", false},
		{"-1", false},
		{"1000", false},
		{"5.255", false},
	}
	for _, tc := range cases {
		err := domain.ValidateInterestRate(decimal.RequireFromString(tc.rate))
		if tc.ok {
			assert.NoError(t, err, "rate %s", tc.rate)
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidArgument, "rate %s", tc.rate)
		}
	}
}

func TestValidateDepositTerms(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("500.00")
	rate := decimal.RequireFromString("4.50")

	start := now.AddDate(0, 0, 1)
	end := start.AddDate(1, 0, 0)
	assert.NoError(t, domain.ValidateDepositTerms(amount, rate, start, end, now))

	// start in the past
	err := domain.ValidateDepositTerms(amount, rate, now.AddDate(0, 0, -2), end, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// end not after start
	err = domain.ValidateDepositTerms(amount, rate, start, start, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// non-positive amount
	err = domain.ValidateDepositTerms(decimal.Zero, rate, start, end, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParseDepositStatus(t *testing.T) {
	got, err := domain.ParseDepositStatus("frozen")
	assert.NoError(t, err)
	assert.Equal(t, domain.DepositFrozen, got)

	_, err = domain.ParseDepositStatus("MELTED")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestParseLoanStatus(t *testing.T) {
	got, err := domain.ParseLoanStatus("overdue")
	assert.NoError(t, err)
	assert.Equal(t, domain.LoanOverdue, got)

	_, err = domain.ParseLoanStatus("PENDING")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
