// Package database owns the GORM connection and schema migration.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	infrarepo "github.com/bankhive/bankcore/infra/repository"
)

// Connect opens a postgres connection and migrates the schema. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey and
// can be mapped to the domain taxonomy by the repositories.
func Connect(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is not set")
	}
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&infrarepo.User{},
		&infrarepo.Account{},
		&infrarepo.Transaction{},
		&infrarepo.Deposit{},
		&infrarepo.Loan{},
	)
}
