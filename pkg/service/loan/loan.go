// Package loan manages borrowing obligations linked to accounts. The named
// owner must match the account's owner; administrators may act on behalf of a
// specified client.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service implements the loan lifecycle operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a loan service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries a loan-opening request.
type CreateInput struct {
	AccountID      uint
	UserID         uint
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	MonthlyPayment decimal.Decimal
	Status         string
}

// Create validates terms and ownership, then persists the loan.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Loan, error) {
	status := domain.LoanActive
	if in.Status != "" {
		var err error
		if status, err = domain.ParseLoanStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateLoanTerms(in.Amount, in.InterestRate, in.MonthlyPayment, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	var loan *domain.Loan
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, in.UserID)
		if err != nil {
			return err
		}
		account, err := accounts.Get(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if account.UserID != owner.ID {
			return domain.ErrOwnershipMismatch
		}
		loan = &domain.Loan{
			Amount:         in.Amount,
			InterestRate:   in.InterestRate,
			StartDate:      in.StartDate,
			EndDate:        in.EndDate,
			MonthlyPayment: in.MonthlyPayment,
			Status:         status,
			AccountID:      account.ID,
			UserID:         owner.ID,
		}
		return loans.Create(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("loan created", "op", "CreateLoan", "id", loan.ID, "account", loan.AccountID)
	return loan, nil
}

// UpdateInput carries a loan update. TargetUserID lets an administrator move
// the loan to a different client; clients may only keep it on themselves.
type UpdateInput struct {
	AccountID      uint
	TargetUserID   uint
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	MonthlyPayment decimal.Decimal
	Status         string
}

// Update rewrites a loan after re-validating terms and that the resolved
// target user owns the resolved account.
func (s *Service) Update(ctx context.Context, actingUserID, id uint, in UpdateInput) (*domain.Loan, error) {
	status, err := domain.ParseLoanStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateLoanTerms(in.Amount, in.InterestRate, in.MonthlyPayment, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}
	var updated *domain.Loan
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		actor, err := users.Get(ctx, actingUserID)
		if err != nil {
			return err
		}
		loan, err := loans.Get(ctx, id)
		if err != nil {
			return err
		}
		targetID, err := domain.ResolveOnBehalf(actor, in.TargetUserID)
		if err != nil {
			return err
		}
		target, err := users.Get(ctx, targetID)
		if err != nil {
			return err
		}
		account, err := accounts.Get(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if account.UserID != target.ID {
			return domain.ErrOwnershipMismatch
		}
		loan.Amount = in.Amount
		loan.InterestRate = in.InterestRate
		loan.StartDate = in.StartDate
		loan.EndDate = in.EndDate
		loan.MonthlyPayment = in.MonthlyPayment
		loan.Status = status
		loan.AccountID = account.ID
		loan.UserID = target.ID
		if err := loans.Update(ctx, loan); err != nil {
			return err
		}
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("loan updated", "op", "UpdateLoan", "id", id)
	return updated, nil
}

// Delete removes a loan.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if _, err := loans.Get(ctx, id); err != nil {
			return err
		}
		return loans.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("loan deleted", "op", "DeleteLoan", "id", id)
	return nil
}

// Get returns a single loan.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Loan, error) {
	loans, err := s.uow.LoanRepository()
	if err != nil {
		return nil, err
	}
	return loans.Get(ctx, id)
}

// ListAll returns every loan.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Loan, error) {
	loans, err := s.uow.LoanRepository()
	if err != nil {
		return nil, err
	}
	return loans.List(ctx, repository.LoanFilter{})
}

// ListByStatusAndUser returns an existing user's loans in the given status.
// No matches is an empty slice, not an error.
func (s *Service) ListByStatusAndUser(ctx context.Context, status string, userID uint) ([]*domain.Loan, error) {
	st, err := domain.ParseLoanStatus(status)
	if err != nil {
		return nil, err
	}
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	if _, err := users.Get(ctx, userID); err != nil {
		return nil, err
	}
	loans, err := s.uow.LoanRepository()
	if err != nil {
		return nil, err
	}
	return loans.List(ctx, repository.LoanFilter{Status: &st, UserID: &userID})
}
