package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/infra/initializer"
	accountsvc "github.com/bankhive/bankcore/pkg/service/account"
	"github.com/bankhive/bankcore/pkg/service/auth"
	depositsvc "github.com/bankhive/bankcore/pkg/service/deposit"
	"github.com/bankhive/bankcore/pkg/service/ledger"
	loansvc "github.com/bankhive/bankcore/pkg/service/loan"
	"github.com/bankhive/bankcore/pkg/service/user"
	"github.com/bankhive/bankcore/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	app := webapi.NewApp(cfg, webapi.Services{
		Auth:    auth.NewService(deps.Uow, cfg.Jwt, deps.Logger),
		User:    user.NewService(deps.Uow, deps.Logger),
		Account: accountsvc.NewService(deps.Uow, deps.Logger),
		Ledger:  ledger.NewService(deps.Uow, deps.Logger),
		Deposit: depositsvc.NewService(deps.Uow, deps.Logger),
		Loan:    loansvc.NewService(deps.Uow, deps.Logger),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
