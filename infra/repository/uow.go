package repository

import (
	"context"

	repo "github.com/bankhive/bankcore/pkg/repository"
	"gorm.io/gorm"
)

// UoW implements the repository.UnitOfWork contract on top of a *gorm.DB.
// Repositories handed out inside Do are bound to the running transaction, so
// a transfer row and both balance updates commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction. Nested calls join the transaction
// already in flight instead of opening a second one.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when one is open, the bare connection
// otherwise (single reads need no explicit boundary).
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

func (u *UoW) DepositRepository() (repo.DepositRepository, error) {
	return NewDepositRepository(u.session()), nil
}

func (u *UoW) LoanRepository() (repo.LoanRepository, error) {
	return NewLoanRepository(u.session()), nil
}

func (u *UoW) UserRepository() (repo.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}
