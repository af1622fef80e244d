// Package initializer wires the infrastructure dependencies the server
// needs before the services come up.
package initializer

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/infra/database"
	infrarepo "github.com/bankhive/bankcore/infra/repository"
	"github.com/bankhive/bankcore/pkg/repository"
)

// Deps holds the infrastructure dependencies shared across services.
type Deps struct {
	DB     *gorm.DB
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// InitializeDependencies connects to the datastore and builds the shared
// unit of work.
func InitializeDependencies(cfg *config.AppConfig) (*Deps, error) {
	logger := setupLogger(&cfg.Log)

	db, err := database.Connect(cfg.DB.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Deps{
		DB:     db,
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, nil
}
