package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType records the direction of a transfer relative to the flow
// being recorded.
type TransactionType string

const (
	TransactionIncoming TransactionType = "INCOMING"
	TransactionOutgoing TransactionType = "OUTGOING"
)

// ParseTransactionType validates a type string case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TransactionIncoming, TransactionOutgoing:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q, valid types: INCOMING, OUTGOING",
			ErrInvalidArgument, s)
	}
}

// Transaction is a recorded transfer of funds between two accounts. The number
// is system-generated and the timestamp is set at persistence time, neither is
// client-supplied.
type Transaction struct {
	ID                   uint
	Number               string
	Type                 TransactionType
	Amount               decimal.Decimal
	Time                 time.Time
	SenderAccountID      uint
	BeneficiaryAccountID uint
	UserID               uint
}

// NewTransactionNumber generates a unique, non-user-derived transaction number.
func NewTransactionNumber() string {
	return "TXN-" + uuid.NewString()
}

// ValidateAmount checks that a monetary amount is positive with at most
// currency granularity (0.01).
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: amount granularity is 0.01", ErrInvalidArgument)
	}
	return nil
}
