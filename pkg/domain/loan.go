package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanClosed  LoanStatus = "CLOSED"
	LoanOverdue LoanStatus = "OVERDUE"
)

// ParseLoanStatus validates a status string case-insensitively.
func ParseLoanStatus(s string) (LoanStatus, error) {
	switch st := LoanStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case LoanActive, LoanClosed, LoanOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown loan status %q, valid statuses: ACTIVE, CLOSED, OVERDUE",
			ErrInvalidArgument, s)
	}
}

// Loan is a borrowing obligation linked to an account. Unlike deposits, an
// account may carry any number of loans.
type Loan struct {
	ID             uint
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	MonthlyPayment decimal.Decimal
	Status         LoanStatus
	AccountID      uint
	UserID         uint
}

// ValidateLoanTerms checks amount, rate, monthly payment and the date window.
func ValidateLoanTerms(amount, rate, monthlyPayment decimal.Decimal, start, end time.Time) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := ValidateInterestRate(rate); err != nil {
		return err
	}
	if !monthlyPayment.IsPositive() {
		return fmt.Errorf("%w: monthly payment must be positive", ErrInvalidArgument)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidArgument)
	}
	return nil
}
