package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account products the bank offers.
type AccountType string

const (
	AccountSavings  AccountType = "SAVINGS"
	AccountChecking AccountType = "CHECKING"
)

var accountTypes = map[AccountType]struct{}{
	AccountSavings:  {},
	AccountChecking: {},
}

// AccountTypeNames returns the valid account types, sorted, for error messages.
func AccountTypeNames() []string {
	names := make([]string, 0, len(accountTypes))
	for t := range accountTypes {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// ParseAccountType validates a type string case-insensitively against the
// closed enum, listing the valid types in the error.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := accountTypes[t]; !ok {
		return "", fmt.Errorf("%w: unknown account type %q, valid types: %s",
			ErrInvalidArgument, s, strings.Join(AccountTypeNames(), ", "))
	}
	return t, nil
}

var accountNumberRe = regexp.MustCompile(`^\d{16}$`)

// ValidAccountNumber reports whether s is a well-formed 16-digit account number.
func ValidAccountNumber(s string) bool { return accountNumberRe.MatchString(s) }

// Account is a balance-holding record owned by exactly one user. The balance
// never goes negative as the result of an outgoing transaction; the ledger
// enforces that before any mutation.
type Account struct {
	ID      uint
	Number  string
	Balance decimal.Decimal
	Type    AccountType
	UserID  uint
}

// NewAccount validates the account fields and builds an unsaved Account.
// The storage layer additionally enforces number uniqueness with a unique
// index, so a racing duplicate create fails at insert rather than slipping
// past the existence check.
func NewAccount(userID uint, number string, balance decimal.Decimal, accountType string) (*Account, error) {
	if !ValidAccountNumber(number) {
		return nil, fmt.Errorf("%w: account number must be exactly 16 digits", ErrInvalidArgument)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", ErrInvalidArgument)
	}
	t, err := ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}
	return &Account{
		Number:  number,
		Balance: balance,
		Type:    t,
		UserID:  userID,
	}, nil
}
