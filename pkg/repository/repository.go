// Package repository defines the data-access contracts the services depend on.
// Implementations live in infra/repository; every invariant (uniqueness,
// ownership, balance consistency) is checked at the application layer, the
// storage layer only backs it up with constraints where it can.
package repository

import (
	"context"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/shopspring/decimal"
)

// AccountFilter narrows account listings. Nil fields are omitted from the
// predicate; set fields combine conjunctively.
type AccountFilter struct {
	Number     *string
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal
	Type       *domain.AccountType
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Type                 *domain.TransactionType
	SenderAccountID      *uint
	BeneficiaryAccountID *uint
}

// LoanFilter narrows loan listings.
type LoanFilter struct {
	Status *domain.LoanStatus
	UserID *uint
}

// AccountRepository is the data access contract for accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, id uint) (*domain.Account, error)
	// GetForUpdate loads an account holding a row lock until the enclosing
	// unit of work commits. Callers locking several accounts must lock them
	// in ascending id order.
	GetForUpdate(ctx context.Context, id uint) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Account, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, a *domain.Account) error
	UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}

// TransactionRepository is the data access contract for ledger rows.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	Get(ctx context.Context, id uint) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Transaction, error)
	CountByAccount(ctx context.Context, accountID uint) (int64, error)
	UpdateAmount(ctx context.Context, id uint, amount decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
}

// DepositRepository is the data access contract for deposits.
type DepositRepository interface {
	Create(ctx context.Context, d *domain.Deposit) error
	Get(ctx context.Context, id uint) (*domain.Deposit, error)
	GetByAccount(ctx context.Context, accountID uint) (*domain.Deposit, error)
	List(ctx context.Context) ([]*domain.Deposit, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Deposit, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, d *domain.Deposit) error
	Delete(ctx context.Context, id uint) error
}

// LoanRepository is the data access contract for loans.
type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) error
	Get(ctx context.Context, id uint) (*domain.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*domain.Loan, error)
	CountByAccount(ctx context.Context, accountID uint) (int64, error)
	Update(ctx context.Context, l *domain.Loan) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository is the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}
