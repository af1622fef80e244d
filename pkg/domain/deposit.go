package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus is the lifecycle state of a fixed-term deposit.
type DepositStatus string

const (
	DepositActive DepositStatus = "ACTIVE"
	DepositClosed DepositStatus = "CLOSED"
	DepositFrozen DepositStatus = "FROZEN"
)

// ParseDepositStatus validates a status string case-insensitively.
func ParseDepositStatus(s string) (DepositStatus, error) {
	switch st := DepositStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case DepositActive, DepositClosed, DepositFrozen:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown deposit status %q, valid statuses: ACTIVE, CLOSED, FROZEN",
			ErrInvalidArgument, s)
	}
}

// Deposit is a fixed-term, interest-bearing balance linked 1:1 to an account.
// An account may hold at most one deposit at a time, and the deposit's owner
// must match the linked account's owner.
type Deposit struct {
	ID           uint
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	Status       DepositStatus
	AccountID    uint
	UserID       uint
}

// maxRate bounds interest rates to three integer digits.
var maxRate = decimal.NewFromInt(1000)

// ValidateInterestRate checks an interest rate: positive, below 1000, at most
// two fractional digits.
func ValidateInterestRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%w: interest rate must be positive", ErrInvalidArgument)
	}
	if rate.GreaterThanOrEqual(maxRate) {
		return fmt.Errorf("%w: interest rate must have at most 3 integer digits", ErrInvalidArgument)
	}
	if !rate.Equal(rate.Round(2)) {
		return fmt.Errorf("%w: interest rate must have at most 2 fractional digits", ErrInvalidArgument)
	}
	return nil
}

// ValidateDepositTerms checks amount, rate and the date window of a deposit.
// Start must be today or later relative to now; end must be after start.
func ValidateDepositTerms(amount, rate decimal.Decimal, start, end time.Time, now time.Time) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := ValidateInterestRate(rate); err != nil {
		return err
	}
	today := now.Truncate(24 * time.Hour)
	if start.Before(today) {
		return fmt.Errorf("%w: start date must be today or later", ErrInvalidArgument)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidArgument)
	}
	return nil
}
