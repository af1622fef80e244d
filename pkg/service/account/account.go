// Package account owns account records: creation with number/balance/type
// validation, lookups, filtered listing and guarded deletion.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service implements the account store operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries an account-opening request.
type CreateInput struct {
	UserID  uint
	Number  string
	Balance decimal.Decimal
	Type    string
}

// Create validates and persists a new account for an existing user. The
// duplicate-number check runs before the insert and the unique index backs it
// up, so two racing creates with the same number cannot both commit.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Account, error) {
	account, err := domain.NewAccount(in.UserID, in.Number, in.Balance, in.Type)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := users.Get(ctx, in.UserID); err != nil {
			return err
		}
		if _, err := accounts.GetByNumber(ctx, in.Number); err == nil {
			return domain.ErrDuplicateAccountNumber
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}
		return accounts.Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "op", "CreateAccount", "id", account.ID, "number", account.Number)
	return account, nil
}

// UpdateInput carries a partial account update; nil fields are left unchanged.
type UpdateInput struct {
	Number  *string
	Balance *decimal.Decimal
	Type    *string
}

// Update applies the supplied changes to an existing account.
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*domain.Account, error) {
	var updated *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		account, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if in.Number != nil {
			if !domain.ValidAccountNumber(*in.Number) {
				return fmt.Errorf("%w: account number must be exactly 16 digits", domain.ErrInvalidArgument)
			}
			account.Number = *in.Number
		}
		if in.Balance != nil {
			if in.Balance.IsNegative() {
				return fmt.Errorf("%w: balance must not be negative", domain.ErrInvalidArgument)
			}
			account.Balance = *in.Balance
		}
		if in.Type != nil {
			t, err := domain.ParseAccountType(*in.Type)
			if err != nil {
				return err
			}
			account.Type = t
		}
		if err := accounts.Update(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", "op", "UpdateAccount", "id", id)
	return updated, nil
}

// Delete removes an account that has no dependent deposit, loans or
// transactions; dependents block the deletion with ErrConflict.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		deposits, err := uow.DepositRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, id); err != nil {
			return err
		}
		if _, err := deposits.GetByAccount(ctx, id); err == nil {
			return fmt.Errorf("%w: account has a deposit", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrDepositNotFound) {
			return err
		}
		loanCount, err := loans.CountByAccount(ctx, id)
		if err != nil {
			return err
		}
		if loanCount > 0 {
			return fmt.Errorf("%w: account has loans", domain.ErrConflict)
		}
		txCount, err := transactions.CountByAccount(ctx, id)
		if err != nil {
			return err
		}
		if txCount > 0 {
			return fmt.Errorf("%w: account has transactions", domain.ErrConflict)
		}
		return accounts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("account deleted", "op", "DeleteAccount", "id", id)
	return nil
}

// Get returns a single account.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.Get(ctx, id)
}

// ListByUser returns the accounts owned by an existing user.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*domain.Account, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	if _, err := users.Get(ctx, userID); err != nil {
		return nil, err
	}
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.ListByUser(ctx, userID)
}

// FilterInput optionally narrows an account listing.
type FilterInput struct {
	Number     string
	MinBalance *decimal.Decimal
	MaxBalance *decimal.Decimal
	Type       string
}

// Filter returns accounts matching all supplied predicates; with none set it
// returns every account. Invalid values are rejected before the store is
// touched.
func (s *Service) Filter(ctx context.Context, in FilterInput) ([]*domain.Account, error) {
	filter := repository.AccountFilter{
		MinBalance: in.MinBalance,
		MaxBalance: in.MaxBalance,
	}
	if in.Number != "" {
		if !domain.ValidAccountNumber(in.Number) {
			return nil, fmt.Errorf("%w: account number must be exactly 16 digits", domain.ErrInvalidArgument)
		}
		filter.Number = &in.Number
	}
	if in.MinBalance != nil && in.MinBalance.IsNegative() {
		return nil, fmt.Errorf("%w: minimum balance must not be negative", domain.ErrInvalidArgument)
	}
	if in.MaxBalance != nil && in.MaxBalance.IsNegative() {
		return nil, fmt.Errorf("%w: maximum balance must not be negative", domain.ErrInvalidArgument)
	}
	if in.MinBalance != nil && in.MaxBalance != nil && in.MinBalance.GreaterThan(*in.MaxBalance) {
		return nil, fmt.Errorf("%w: minimum balance exceeds maximum", domain.ErrInvalidArgument)
	}
	if in.Type != "" {
		t, err := domain.ParseAccountType(in.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.List(ctx, filter)
}
