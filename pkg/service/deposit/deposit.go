// Package deposit manages the fixed-term deposit attached 1:1 to an account.
// Clients open deposits on their own accounts; administrators act on behalf of
// a named client and never implicitly for themselves.
package deposit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service implements the deposit lifecycle operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a deposit service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// WithClock overrides the date source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// OpenInput carries a deposit-opening request. TargetUserID names the client
// an administrator acts for; clients leave it zero (or name themselves).
type OpenInput struct {
	AccountID    uint
	TargetUserID uint
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	Status       string
}

// Open validates terms, ownership and the single-deposit rule, then persists
// the deposit linked to the account and its owner.
func (s *Service) Open(ctx context.Context, actingUserID uint, in OpenInput) (*domain.Deposit, error) {
	status := domain.DepositActive
	if in.Status != "" {
		var err error
		if status, err = domain.ParseDepositStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if err := domain.ValidateDepositTerms(in.Amount, in.InterestRate, in.StartDate, in.EndDate, s.now()); err != nil {
		return nil, err
	}

	var deposit *domain.Deposit
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		deposits, err := uow.DepositRepository()
		if err != nil {
			return err
		}
		actor, err := users.Get(ctx, actingUserID)
		if err != nil {
			return err
		}
		ownerID, err := domain.ResolveOnBehalf(actor, in.TargetUserID)
		if err != nil {
			return err
		}
		account, err := accounts.Get(ctx, in.AccountID)
		if err != nil {
			return err
		}
		if account.UserID != ownerID {
			if actor.IsAdmin() {
				return domain.ErrOwnershipMismatch
			}
			return domain.ErrForbidden
		}
		if _, err := deposits.GetByAccount(ctx, account.ID); err == nil {
			return domain.ErrAlreadyLinked
		} else if !errors.Is(err, domain.ErrDepositNotFound) {
			return err
		}
		deposit = &domain.Deposit{
			Amount:       in.Amount,
			InterestRate: in.InterestRate,
			StartDate:    in.StartDate,
			EndDate:      in.EndDate,
			Status:       status,
			AccountID:    account.ID,
			UserID:       ownerID,
		}
		return deposits.Create(ctx, deposit)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("deposit opened", "op", "OpenDeposit", "id", deposit.ID, "account", deposit.AccountID)
	return deposit, nil
}

// UpdateInput carries a deposit update; nil fields stay unchanged.
type UpdateInput struct {
	Amount       *decimal.Decimal
	InterestRate *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
	Status       *string
}

// Update modifies a deposit the acting user may manage: its owner, or an
// administrator acting on the owner's behalf.
func (s *Service) Update(ctx context.Context, actingUserID, id uint, in UpdateInput) (*domain.Deposit, error) {
	var updated *domain.Deposit
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		deposits, err := uow.DepositRepository()
		if err != nil {
			return err
		}
		actor, err := users.Get(ctx, actingUserID)
		if err != nil {
			return err
		}
		deposit, err := deposits.Get(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanActOn(deposit.UserID) {
			return domain.ErrForbidden
		}
		if in.Amount != nil {
			if err := domain.ValidateAmount(*in.Amount); err != nil {
				return err
			}
			deposit.Amount = *in.Amount
		}
		if in.InterestRate != nil {
			if err := domain.ValidateInterestRate(*in.InterestRate); err != nil {
				return err
			}
			deposit.InterestRate = *in.InterestRate
		}
		if in.StartDate != nil {
			deposit.StartDate = *in.StartDate
		}
		if in.EndDate != nil {
			deposit.EndDate = *in.EndDate
		}
		if !deposit.EndDate.After(deposit.StartDate) {
			return fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidArgument)
		}
		if in.Status != nil {
			st, err := domain.ParseDepositStatus(*in.Status)
			if err != nil {
				return err
			}
			deposit.Status = st
		}
		if err := deposits.Update(ctx, deposit); err != nil {
			return err
		}
		updated = deposit
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("deposit updated", "op", "UpdateDeposit", "id", id)
	return updated, nil
}

// Close unlinks and deletes a deposit, then verifies the row count actually
// decreased; a silent no-op delete surfaces as ErrDeleteFailed.
func (s *Service) Close(ctx context.Context, actingUserID, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		deposits, err := uow.DepositRepository()
		if err != nil {
			return err
		}
		actor, err := users.Get(ctx, actingUserID)
		if err != nil {
			return err
		}
		deposit, err := deposits.Get(ctx, id)
		if err != nil {
			return err
		}
		if !actor.CanActOn(deposit.UserID) {
			return domain.ErrForbidden
		}
		before, err := deposits.Count(ctx)
		if err != nil {
			return err
		}
		if err := deposits.Delete(ctx, deposit.ID); err != nil {
			return err
		}
		after, err := deposits.Count(ctx)
		if err != nil {
			return err
		}
		if after != before-1 {
			return domain.ErrDeleteFailed
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("deposit closed", "op", "CloseDeposit", "id", id)
	return nil
}

// Get returns a single deposit.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Deposit, error) {
	deposits, err := s.uow.DepositRepository()
	if err != nil {
		return nil, err
	}
	return deposits.Get(ctx, id)
}

// ListAll returns every deposit ordered by id.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Deposit, error) {
	deposits, err := s.uow.DepositRepository()
	if err != nil {
		return nil, err
	}
	return deposits.List(ctx)
}

// ListByUser returns the deposits owned by an existing user.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*domain.Deposit, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	if _, err := users.Get(ctx, userID); err != nil {
		return nil, err
	}
	deposits, err := s.uow.DepositRepository()
	if err != nil {
		return nil, err
	}
	return deposits.ListByUser(ctx, userID)
}
