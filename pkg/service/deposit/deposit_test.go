package deposit_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infrarepo "github.com/bankhive/bankcore/infra/repository"
	"github.com/bankhive/bankcore/internal/fixtures"
	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/service/deposit"
	"gorm.io/gorm"
)

var testClock = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func validTerms(accountID uint) deposit.OpenInput {
	return deposit.OpenInput{
		AccountID:    accountID,
		Amount:       decimal.RequireFromString("500.00"),
		InterestRate: decimal.RequireFromString("4.5"),
		StartDate:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func setup(t *testing.T) (*deposit.Service, *gorm.DB, *domain.User, *domain.Account) {
	t.Helper()
	uow, db := fixtures.NewTestUoW(t)
	svc := deposit.NewService(uow, slog.New(slog.DiscardHandler)).WithClock(testClock)
	owner := fixtures.SeedUser(t, db, "owner@bank.test", domain.RoleClient)
	acct := fixtures.SeedAccount(t, db, owner.ID, "1234567812345678", "1000.00")
	return svc, db, owner, acct
}

func TestOpen_OwnerOpensOwnDeposit(t *testing.T) {
	svc, _, owner, acct := setup(t)

	d, err := svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.DepositActive, d.Status, "status defaults to ACTIVE")
	assert.Equal(t, acct.ID, d.AccountID)
	assert.Equal(t, owner.ID, d.UserID)
}

func TestOpen_SecondDepositRejected(t *testing.T) {
	svc, _, owner, acct := setup(t)

	_, err := svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	require.NoError(t, err)

	_, err = svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	assert.ErrorIs(t, err, domain.ErrAlreadyLinked)
}

func TestOpen_AdminMustNameClient(t *testing.T) {
	svc, db, _, acct := setup(t)
	admin := fixtures.SeedUser(t, db, "admin@bank.test", domain.RoleAdmin)

	_, err := svc.Open(context.Background(), admin.ID, validTerms(acct.ID))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestOpen_AdminOnBehalfOfOwner(t *testing.T) {
	svc, db, owner, acct := setup(t)
	admin := fixtures.SeedUser(t, db, "admin@bank.test", domain.RoleAdmin)

	in := validTerms(acct.ID)
	in.TargetUserID = owner.ID
	d, err := svc.Open(context.Background(), admin.ID, in)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, d.UserID, "deposit belongs to the named client, not the admin")
}

func TestOpen_AdminNamesWrongClient(t *testing.T) {
	svc, db, _, acct := setup(t)
	admin := fixtures.SeedUser(t, db, "admin@bank.test", domain.RoleAdmin)
	stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)

	in := validTerms(acct.ID)
	in.TargetUserID = stranger.ID
	_, err := svc.Open(context.Background(), admin.ID, in)
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
}

func TestOpen_ClientCannotActForOthers(t *testing.T) {
	svc, db, owner, acct := setup(t)
	stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)

	t.Run("naming another client", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.TargetUserID = owner.ID
		_, err := svc.Open(context.Background(), stranger.ID, in)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
	t.Run("opening on a foreign account", func(t *testing.T) {
		_, err := svc.Open(context.Background(), stranger.ID, validTerms(acct.ID))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestOpen_TermValidation(t *testing.T) {
	svc, _, owner, acct := setup(t)

	t.Run("start in the past", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.StartDate = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Open(context.Background(), owner.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("end before start", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.EndDate = in.StartDate.AddDate(0, 0, -1)
		_, err := svc.Open(context.Background(), owner.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("zero amount", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.Amount = decimal.Zero
		_, err := svc.Open(context.Background(), owner.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("rate out of range", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.InterestRate = decimal.RequireFromString("1000")
		_, err := svc.Open(context.Background(), owner.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
	t.Run("unknown status", func(t *testing.T) {
		in := validTerms(acct.ID)
		in.Status = "PENDING"
		_, err := svc.Open(context.Background(), owner.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestUpdate(t *testing.T) {
	svc, db, owner, acct := setup(t)
	stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)

	d, err := svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	require.NoError(t, err)

	frozen := "FROZEN"
	updated, err := svc.Update(context.Background(), owner.ID, d.ID, deposit.UpdateInput{Status: &frozen})
	require.NoError(t, err)
	assert.Equal(t, domain.DepositFrozen, updated.Status)

	_, err = svc.Update(context.Background(), stranger.ID, d.ID, deposit.UpdateInput{Status: &frozen})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	badEnd := d.StartDate.AddDate(0, 0, -1)
	_, err = svc.Update(context.Background(), owner.ID, d.ID, deposit.UpdateInput{EndDate: &badEnd})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Update(context.Background(), owner.ID, 9999, deposit.UpdateInput{Status: &frozen})
	assert.ErrorIs(t, err, domain.ErrDepositNotFound)
}

func TestClose(t *testing.T) {
	svc, db, owner, acct := setup(t)
	stranger := fixtures.SeedUser(t, db, "stranger@bank.test", domain.RoleClient)

	d, err := svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	require.NoError(t, err)

	require.ErrorIs(t, svc.Close(context.Background(), stranger.ID, d.ID), domain.ErrForbidden)

	require.NoError(t, svc.Close(context.Background(), owner.ID, d.ID))
	assert.Zero(t, fixtures.CountRows(t, db, &infrarepo.Deposit{}))

	// The account is free for a new deposit once the old one is closed.
	_, err = svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Close(context.Background(), owner.ID, 9999), domain.ErrDepositNotFound)
}

func TestListByUser(t *testing.T) {
	svc, db, owner, acct := setup(t)
	other := fixtures.SeedUser(t, db, "other@bank.test", domain.RoleClient)

	_, err := svc.Open(context.Background(), owner.ID, validTerms(acct.ID))
	require.NoError(t, err)

	got, err := svc.ListByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = svc.ListByUser(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ListByUser(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
