// Package fixtures provides test helpers: an in-memory sqlite database wired
// through the real GORM unit of work, plus seed helpers for users and
// accounts. Service tests exercise the same persistence path production uses.
package fixtures

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bankhive/bankcore/infra/database"
	infrarepo "github.com/bankhive/bankcore/infra/repository"
	"github.com/bankhive/bankcore/pkg/domain"
)

var dbSeq atomic.Int64

// NewTestDB opens a fresh in-memory sqlite database with the full schema.
// cache=shared keeps the database alive across the pooled connections gorm
// opens; the per-test name isolates parallel tests from each other.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:bankcore_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// NewTestUoW opens a test database and returns a unit of work over it.
func NewTestUoW(t *testing.T) (*infrarepo.UoW, *gorm.DB) {
	t.Helper()
	db := NewTestDB(t)
	return infrarepo.NewUoW(db), db
}

// SeedUser inserts a user and returns it with its generated id.
func SeedUser(t *testing.T, db *gorm.DB, email string, role domain.Role) *domain.User {
	t.Helper()
	m := &infrarepo.User{
		Name:     "Test",
		Surname:  "User",
		Email:    email,
		Password: "$2a$10$fixturefixturefixturefixturefix",
		Role:     string(role),
	}
	require.NoError(t, db.Create(m).Error)
	return &domain.User{ID: m.ID, Name: m.Name, Surname: m.Surname, Email: m.Email, Role: role}
}

// SeedAccount inserts an account for the given user and returns it.
func SeedAccount(t *testing.T, db *gorm.DB, userID uint, number, balance string) *domain.Account {
	t.Helper()
	m := &infrarepo.Account{
		Number:  number,
		Balance: decimal.RequireFromString(balance),
		Type:    string(domain.AccountChecking),
		UserID:  userID,
	}
	require.NoError(t, db.Create(m).Error)
	return &domain.Account{ID: m.ID, Number: m.Number, Balance: m.Balance, Type: domain.AccountChecking, UserID: userID}
}

// AccountBalance reads an account's current balance straight from the store.
func AccountBalance(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var m infrarepo.Account
	require.NoError(t, db.First(&m, id).Error)
	return m.Balance
}

// CountRows counts rows of the given model.
func CountRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
