// Package repository contains the GORM-backed implementations of the
// pkg/repository contracts. Persistence models are kept separate from the
// domain entities and mapped by hand, so every field mapping is auditable.
package repository

import (
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/shopspring/decimal"
)

// User is the persisted form of domain.User.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Surname   string `gorm:"size:100;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"size:100;not null"`
	Role      string `gorm:"size:16;not null;default:CLIENT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is the persisted form of domain.Account. The unique index on Number
// backs up the application-level duplicate check so racing creates cannot both
// commit.
type Account struct {
	ID        uint            `gorm:"primaryKey"`
	Number    string          `gorm:"uniqueIndex;size:16;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Type      string          `gorm:"size:16;not null"`
	UserID    uint            `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is the persisted form of domain.Transaction.
type Transaction struct {
	ID                   uint            `gorm:"primaryKey"`
	Number               string          `gorm:"uniqueIndex;size:64;not null"`
	Type                 string          `gorm:"size:16;not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Time                 time.Time       `gorm:"not null"`
	SenderAccountID      uint            `gorm:"index;not null"`
	BeneficiaryAccountID uint            `gorm:"index;not null"`
	UserID               uint            `gorm:"index;not null"`
}

// Deposit is the persisted form of domain.Deposit. The unique index on
// AccountID enforces the one-deposit-per-account invariant at the store.
type Deposit struct {
	ID           uint            `gorm:"primaryKey"`
	Amount       decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	InterestRate decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	StartDate    time.Time       `gorm:"not null"`
	EndDate      time.Time       `gorm:"not null"`
	Status       string          `gorm:"size:16;not null"`
	AccountID    uint            `gorm:"uniqueIndex;not null"`
	UserID       uint            `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Loan is the persisted form of domain.Loan.
type Loan struct {
	ID             uint            `gorm:"primaryKey"`
	Amount         decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	InterestRate   decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	StartDate      time.Time       `gorm:"not null"`
	EndDate        time.Time       `gorm:"not null"`
	MonthlyPayment decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Status         string          `gorm:"size:16;not null"`
	AccountID      uint            `gorm:"index;not null"`
	UserID         uint            `gorm:"index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m *User) toDomain() *domain.User {
	return &domain.User{
		ID:       m.ID,
		Name:     m.Name,
		Surname:  m.Surname,
		Email:    m.Email,
		Password: m.Password,
		Role:     domain.Role(m.Role),
	}
}

func userFromDomain(u *domain.User) *User {
	return &User{
		ID:       u.ID,
		Name:     u.Name,
		Surname:  u.Surname,
		Email:    u.Email,
		Password: u.Password,
		Role:     string(u.Role),
	}
}

func (m *Account) toDomain() *domain.Account {
	return &domain.Account{
		ID:      m.ID,
		Number:  m.Number,
		Balance: m.Balance,
		Type:    domain.AccountType(m.Type),
		UserID:  m.UserID,
	}
}

func accountFromDomain(a *domain.Account) *Account {
	return &Account{
		ID:      a.ID,
		Number:  a.Number,
		Balance: a.Balance,
		Type:    string(a.Type),
		UserID:  a.UserID,
	}
}

func (m *Transaction) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:                   m.ID,
		Number:               m.Number,
		Type:                 domain.TransactionType(m.Type),
		Amount:               m.Amount,
		Time:                 m.Time,
		SenderAccountID:      m.SenderAccountID,
		BeneficiaryAccountID: m.BeneficiaryAccountID,
		UserID:               m.UserID,
	}
}

func transactionFromDomain(t *domain.Transaction) *Transaction {
	return &Transaction{
		ID:                   t.ID,
		Number:               t.Number,
		Type:                 string(t.Type),
		Amount:               t.Amount,
		Time:                 t.Time,
		SenderAccountID:      t.SenderAccountID,
		BeneficiaryAccountID: t.BeneficiaryAccountID,
		UserID:               t.UserID,
	}
}

func (m *Deposit) toDomain() *domain.Deposit {
	return &domain.Deposit{
		ID:           m.ID,
		Amount:       m.Amount,
		InterestRate: m.InterestRate,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Status:       domain.DepositStatus(m.Status),
		AccountID:    m.AccountID,
		UserID:       m.UserID,
	}
}

func depositFromDomain(d *domain.Deposit) *Deposit {
	return &Deposit{
		ID:           d.ID,
		Amount:       d.Amount,
		InterestRate: d.InterestRate,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Status:       string(d.Status),
		AccountID:    d.AccountID,
		UserID:       d.UserID,
	}
}

func (m *Loan) toDomain() *domain.Loan {
	return &domain.Loan{
		ID:             m.ID,
		Amount:         m.Amount,
		InterestRate:   m.InterestRate,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		MonthlyPayment: m.MonthlyPayment,
		Status:         domain.LoanStatus(m.Status),
		AccountID:      m.AccountID,
		UserID:         m.UserID,
	}
}

func loanFromDomain(l *domain.Loan) *Loan {
	return &Loan{
		ID:             l.ID,
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		MonthlyPayment: l.MonthlyPayment,
		Status:         string(l.Status),
		AccountID:      l.AccountID,
		UserID:         l.UserID,
	}
}
