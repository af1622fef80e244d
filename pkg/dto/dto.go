// Package dto holds the transfer-shaped views of the domain entities and the
// hand-written conversion functions between them. Every field mapping is
// explicit; there is no reflection-based mapper anywhere.
package dto

import (
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/shopspring/decimal"
)

// AccountRead is the response shape for accounts.
type AccountRead struct {
	ID      uint            `json:"id"`
	Number  string          `json:"account_number"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type"`
	UserID  uint            `json:"user_id"`
}

// FromAccount maps a domain account to its read shape.
func FromAccount(a *domain.Account) *AccountRead {
	return &AccountRead{
		ID:      a.ID,
		Number:  a.Number,
		Balance: a.Balance,
		Type:    string(a.Type),
		UserID:  a.UserID,
	}
}

// FromAccounts maps a slice of domain accounts.
func FromAccounts(as []*domain.Account) []*AccountRead {
	out := make([]*AccountRead, 0, len(as))
	for _, a := range as {
		out = append(out, FromAccount(a))
	}
	return out
}

// TransactionRead is the response shape for ledger rows.
type TransactionRead struct {
	ID                   uint            `json:"id"`
	Number               string          `json:"transaction_number"`
	Type                 string          `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	Time                 time.Time       `json:"time"`
	SenderAccountID      uint            `json:"sender_account_id"`
	BeneficiaryAccountID uint            `json:"beneficiary_account_id"`
	UserID               uint            `json:"user_id"`
}

// FromTransaction maps a domain transaction to its read shape.
func FromTransaction(t *domain.Transaction) *TransactionRead {
	return &TransactionRead{
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

// FromTransactions maps a slice of domain transactions.
func FromTransactions(ts []*domain.Transaction) []*TransactionRead {
	out := make([]*TransactionRead, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}

// DepositRead is the response shape for deposits.
type DepositRead struct {
	ID           uint            `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Status       string          `json:"status"`
	AccountID    uint            `json:"account_id"`
	UserID       uint            `json:"user_id"`
}

// FromDeposit maps a domain deposit to its read shape.
func FromDeposit(d *domain.Deposit) *DepositRead {
	return &DepositRead{
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

// FromDeposits maps a slice of domain deposits.
func FromDeposits(ds []*domain.Deposit) []*DepositRead {
	out := make([]*DepositRead, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDeposit(d))
	}
	return out
}

// LoanRead is the response shape for loans.
type LoanRead struct {
	ID             uint            `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Status         string          `json:"status"`
	AccountID      uint            `json:"account_id"`
	UserID         uint            `json:"user_id"`
}

// FromLoan maps a domain loan to its read shape.
func FromLoan(l *domain.Loan) *LoanRead {
	return &LoanRead{
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

// FromLoans maps a slice of domain loans.
func FromLoans(ls []*domain.Loan) []*LoanRead {
	out := make([]*LoanRead, 0, len(ls))
	for _, l := range ls {
		out = append(out, FromLoan(l))
	}
	return out
}

// UserRead is the response shape for users; the password hash never leaves
// the service layer.
type UserRead struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// FromUser maps a domain user to its read shape.
func FromUser(u *domain.User) *UserRead {
	return &UserRead{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
		Role:    string(u.Role),
	}
}
