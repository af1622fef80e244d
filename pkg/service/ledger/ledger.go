// Package ledger moves money between accounts. A transfer persists one
// transaction row and rewrites both account balances inside a single unit of
// work; the account rows are locked in ascending id order so concurrent
// transfers between the same pair cannot deadlock, and concurrent transfers
// from the same sender cannot both pass the funds check.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service implements the transaction ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a ledger service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger, now: time.Now}
}

// WithClock overrides the timestamp source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// TransferInput carries a transfer request into the ledger.
type TransferInput struct {
	SenderAccountID      uint
	BeneficiaryAccountID uint
	Amount               decimal.Decimal
	Type                 string
	UserID               uint
}

// AddTransfer validates and settles a transfer. All validation happens before
// any mutation; the transaction row and both balance updates are one atomic
// unit. The sum of the two balances is invariant across the operation.
func (s *Service) AddTransfer(ctx context.Context, in TransferInput) (*domain.Transaction, error) {
	logger := s.logger.With(
		"op", "AddTransfer",
		"sender", in.SenderAccountID,
		"beneficiary", in.BeneficiaryAccountID,
	)
	txType, err := domain.ParseTransactionType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if in.SenderAccountID == in.BeneficiaryAccountID {
		return nil, fmt.Errorf("%w: sender and beneficiary must differ", domain.ErrInvalidArgument)
	}

	var created *domain.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		sender, beneficiary, err := lockPair(ctx, accounts, in.SenderAccountID, in.BeneficiaryAccountID)
		if err != nil {
			return err
		}
		if _, err := users.Get(ctx, in.UserID); err != nil {
			return err
		}
		if txType == domain.TransactionOutgoing && in.Amount.GreaterThan(sender.Balance) {
			return domain.ErrInsufficientFunds
		}

		created = &domain.Transaction{
			Number:               domain.NewTransactionNumber(),
			Type:                 txType,
			Amount:               in.Amount,
			Time:                 s.now(),
			SenderAccountID:      sender.ID,
			BeneficiaryAccountID: beneficiary.ID,
			UserID:               in.UserID,
		}
		if err := transactions.Create(ctx, created); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, sender.ID, sender.Balance.Sub(in.Amount)); err != nil {
			return err
		}
		return accounts.UpdateBalance(ctx, beneficiary.ID, beneficiary.Balance.Add(in.Amount))
	})
	if err != nil {
		return nil, err
	}
	logger.Info("transfer settled", "transaction", created.Number, "amount", in.Amount)
	return created, nil
}

// AmendTransferAmount changes a transaction's amount and adjusts the
// counterpart account by the delta: the sender for OUTGOING transactions, the
// beneficiary otherwise. A positive delta on an OUTGOING transaction must not
// exceed the counterpart's current balance.
func (s *Service) AmendTransferAmount(ctx context.Context, transactionID uint, newAmount decimal.Decimal) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(newAmount); err != nil {
		return nil, err
	}
	var amended *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		tx, err := transactions.Get(ctx, transactionID)
		if err != nil {
			return err
		}

		counterpartID := tx.BeneficiaryAccountID
		outgoing := tx.Type == domain.TransactionOutgoing
		if outgoing {
			counterpartID = tx.SenderAccountID
		}
		account, err := accounts.GetForUpdate(ctx, counterpartID)
		if err != nil {
			return err
		}

		delta := newAmount.Sub(tx.Amount)
		if outgoing && delta.IsPositive() && delta.GreaterThan(account.Balance) {
			return domain.ErrInsufficientFunds
		}
		balance := account.Balance.Add(delta)
		if outgoing {
			balance = account.Balance.Sub(delta)
		}
		if err := transactions.UpdateAmount(ctx, tx.ID, newAmount); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, account.ID, balance); err != nil {
			return err
		}
		tx.Amount = newAmount
		amended = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer amended", "op", "AmendTransferAmount", "transaction", amended.Number, "amount", newAmount)
	return amended, nil
}

// DeleteTransaction removes a ledger row and reverses its balance effect:
// the sender gets the amount back, the beneficiary gives it up. The reversal
// fails with ErrInsufficientFunds when the beneficiary no longer covers it,
// leaving everything untouched.
func (s *Service) DeleteTransaction(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		tx, err := transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		sender, beneficiary, err := lockPair(ctx, accounts, tx.SenderAccountID, tx.BeneficiaryAccountID)
		if err != nil {
			return err
		}
		if tx.Amount.GreaterThan(beneficiary.Balance) {
			return domain.ErrInsufficientFunds
		}
		if err := accounts.UpdateBalance(ctx, sender.ID, sender.Balance.Add(tx.Amount)); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(ctx, beneficiary.ID, beneficiary.Balance.Sub(tx.Amount)); err != nil {
			return err
		}
		return transactions.Delete(ctx, tx.ID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction deleted", "op", "DeleteTransaction", "id", id)
	return nil
}

// Get returns a single transaction.
func (s *Service) Get(ctx context.Context, id uint) (*domain.Transaction, error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.Get(ctx, id)
}

// ListAll returns every transaction.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.List(ctx, repository.TransactionFilter{})
}

// ListByUser returns the transactions initiated by the given user.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]*domain.Transaction, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	if _, err := users.Get(ctx, userID); err != nil {
		return nil, err
	}
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.ListByUser(ctx, userID)
}

// FilterInput optionally narrows a transaction listing; empty fields are
// left out of the predicate.
type FilterInput struct {
	Type                 string
	SenderAccountID      *uint
	BeneficiaryAccountID *uint
}

// Filter returns the transactions matching all supplied predicates. The type
// must be a valid transaction type when given; sender and beneficiary ids must
// reference existing accounts. No matches is an empty slice, not an error.
func (s *Service) Filter(ctx context.Context, in FilterInput) ([]*domain.Transaction, error) {
	filter := repository.TransactionFilter{
		SenderAccountID:      in.SenderAccountID,
		BeneficiaryAccountID: in.BeneficiaryAccountID,
	}
	if in.Type != "" {
		t, err := domain.ParseTransactionType(in.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	if in.SenderAccountID != nil {
		if _, err := accounts.Get(ctx, *in.SenderAccountID); err != nil {
			return nil, fmt.Errorf("sender: %w", err)
		}
	}
	if in.BeneficiaryAccountID != nil {
		if _, err := accounts.Get(ctx, *in.BeneficiaryAccountID); err != nil {
			return nil, fmt.Errorf("beneficiary: %w", err)
		}
	}
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.List(ctx, filter)
}

// lockPair locks two account rows in ascending id order and returns them as
// (first, second) matching the requested ids.
func lockPair(ctx context.Context, accounts repository.AccountRepository, firstID, secondID uint) (*domain.Account, *domain.Account, error) {
	lo, hi := firstID, secondID
	if lo > hi {
		lo, hi = hi, lo
	}
	loAcct, err := accounts.GetForUpdate(ctx, lo)
	if err != nil {
		return nil, nil, err
	}
	hiAcct, err := accounts.GetForUpdate(ctx, hi)
	if err != nil {
		return nil, nil, err
	}
	if loAcct.ID == firstID {
		return loAcct, hiAcct, nil
	}
	return hiAcct, loAcct, nil
}
