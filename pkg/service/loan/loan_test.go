package loan_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankhive/bankcore/internal/fixtures"
	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/service/loan"
	"gorm.io/gorm"
)

func validLoan(accountID, userID uint) loan.CreateInput {
	return loan.CreateInput{
		AccountID:      accountID,
		UserID:         userID,
		Amount:         decimal.RequireFromString("12000.00"),
		InterestRate:   decimal.RequireFromString("9.9"),
		StartDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2027, 7, 1, 0, 0, 0, 0, time.UTC),
		MonthlyPayment: decimal.RequireFromString("550.00"),
	}
}

func setup(t *testing.T) (*loan.Service, *gorm.DB, *domain.User, *domain.Account) {
	t.Helper()
	uow, db := fixtures.NewTestUoW(t)
	svc := loan.NewService(uow, slog.New(slog.DiscardHandler))
	owner := fixtures.SeedUser(t, db, "owner@bank.test", domain.RoleClient)
	acct := fixtures.SeedAccount(t, db, owner.ID, "1234567812345678", "0.00")
	return svc, db, owner, acct
}

func TestCreate(t *testing.T) {
	svc, db, owner, acct := setup(t)

	l, err := svc.Create(context.Background(), validLoan(acct.ID, owner.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.LoanActive, l.Status, "status defaults to ACTIVE")
	assert.Equal(t, acct.ID, l.AccountID)
	assert.Equal(t, owner.ID, l.UserID)

	// Unlike deposits, one account may carry several loans.
	_, err = svc.Create(context.Background(), validLoan(acct.ID, owner.ID))
	assert.NoError(t, err)

	t.Run("named owner must own the account", func(t *testing.T) {
		stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)
		_, err := svc.Create(context.Background(), validLoan(acct.ID, stranger.ID))
		assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	})
	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Create(context.Background(), validLoan(9999, owner.ID))
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Create(context.Background(), validLoan(acct.ID, 9999))
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
	t.Run("bad terms", func(t *testing.T) {
		in := validLoan(acct.ID, owner.ID)
		in.EndDate = in.StartDate.AddDate(0, 0, -1)
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("unknown status", func(t *testing.T) {
		in := validLoan(acct.ID, owner.ID)
		in.Status = "DEFAULTED"
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestUpdate(t *testing.T) {
	svc, db, owner, acct := setup(t)
	admin := fixtures.SeedUser(t, db, "admin@bank.test", domain.RoleAdmin)

	l, err := svc.Create(context.Background(), validLoan(acct.ID, owner.ID))
	require.NoError(t, err)

	update := loan.UpdateInput{
		AccountID:      acct.ID,
		Amount:         decimal.RequireFromString("10000.00"),
		InterestRate:   decimal.RequireFromString("8.5"),
		StartDate:      l.StartDate,
		EndDate:        l.EndDate,
		MonthlyPayment: decimal.RequireFromString("480.00"),
		Status:         "OVERDUE",
	}

	t.Run("owner updates own loan", func(t *testing.T) {
		got, err := svc.Update(context.Background(), owner.ID, l.ID, update)
		require.NoError(t, err)
		assert.Equal(t, domain.LoanOverdue, got.Status)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("10000.00")))
	})
	t.Run("admin must name the client", func(t *testing.T) {
		_, err := svc.Update(context.Background(), admin.ID, l.ID, update)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("admin on behalf of owner", func(t *testing.T) {
		in := update
		in.TargetUserID = owner.ID
		got, err := svc.Update(context.Background(), admin.ID, l.ID, in)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, got.UserID)
	})
	t.Run("client cannot move the loan to another user", func(t *testing.T) {
		stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)
		in := update
		in.TargetUserID = stranger.ID
		_, err := svc.Update(context.Background(), owner.ID, l.ID, in)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("target must own the account", func(t *testing.T) {
		stranger := fixtures.SeedUser(t, db, "stranger2@bank.test", domain.RoleClient)
		in := update
		in.TargetUserID = stranger.ID
		_, err := svc.Update(context.Background(), admin.ID, l.ID, in)
		assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	})
	t.Run("missing loan", func(t *testing.T) {
		_, err := svc.Update(context.Background(), owner.ID, 9999, update)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})
}

func TestDelete(t *testing.T) {
	svc, _, owner, acct := setup(t)

	l, err := svc.Create(context.Background(), validLoan(acct.ID, owner.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), l.ID))
	_, err = svc.Get(context.Background(), l.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), l.ID), domain.ErrLoanNotFound)
}

func TestListByStatusAndUser(t *testing.T) {
	svc, db, owner, acct := setup(t)
	other := fixtures.SeedUser(t, db, "other@bank.test", domain.RoleClient)
	otherAcct := fixtures.SeedAccount(t, db, other.ID, "8765432187654321", "0.00")

	_, err := svc.Create(context.Background(), validLoan(acct.ID, owner.ID))
	require.NoError(t, err)
	overdue := validLoan(acct.ID, owner.ID)
	overdue.Status = "OVERDUE"
	_, err = svc.Create(context.Background(), overdue)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validLoan(otherAcct.ID, other.ID))
	require.NoError(t, err)

	got, err := svc.ListByStatusAndUser(context.Background(), "ACTIVE", owner.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListByStatusAndUser(context.Background(), "OVERDUE", owner.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListByStatusAndUser(context.Background(), "CLOSED", owner.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ListByStatusAndUser(context.Background(), "BOGUS", owner.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.ListByStatusAndUser(context.Background(), "ACTIVE", 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
