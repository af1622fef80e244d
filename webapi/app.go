package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/bankhive/bankcore/config"
	"github.com/bankhive/bankcore/pkg/middleware"
	accountsvc "github.com/bankhive/bankcore/pkg/service/account"
	"github.com/bankhive/bankcore/pkg/service/auth"
	depositsvc "github.com/bankhive/bankcore/pkg/service/deposit"
	"github.com/bankhive/bankcore/pkg/service/ledger"
	loansvc "github.com/bankhive/bankcore/pkg/service/loan"
	"github.com/bankhive/bankcore/pkg/service/user"
)

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Auth    *auth.Service
	User    *user.Service
	Account *accountsvc.Service
	Ledger  *ledger.Service
	Deposit *depositsvc.Service
	Loan    *loansvc.Service
}

// NewApp initializes the Fiber application and registers all routes.
func NewApp(cfg *config.AppConfig, svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "bankcore",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, utils.StatusMessage(status), err.Error())
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	protected := middleware.JwtProtected(cfg.Jwt)

	app.Post("/auth/login", Login(svcs.Auth))
	app.Post("/users", RegisterUser(svcs.User))
	app.Get("/users/:id", protected, GetUser(svcs.User))
	app.Delete("/users/:id", protected, DeleteUser(svcs.User))
	app.Get("/users/:id/accounts", protected, ListAccountsByUser(svcs.Account))
	app.Get("/users/:id/transactions", protected, ListTransactionsByUser(svcs.Ledger))
	app.Get("/users/:id/deposits", protected, ListDepositsByUser(svcs.Deposit))

	app.Post("/accounts", protected, CreateAccount(svcs.Account))
	app.Get("/accounts", protected, ListAccounts(svcs.Account))
	app.Get("/accounts/:id", protected, GetAccount(svcs.Account))
	app.Put("/accounts/:id", protected, UpdateAccount(svcs.Account))
	app.Delete("/accounts/:id", protected, DeleteAccount(svcs.Account))

	app.Post("/transactions", protected, AddTransfer(svcs.Ledger))
	app.Get("/transactions", protected, ListTransactions(svcs.Ledger))
	app.Get("/transactions/:id", protected, GetTransaction(svcs.Ledger))
	app.Patch("/transactions/:id/amount", protected, AmendTransaction(svcs.Ledger))
	app.Delete("/transactions/:id", protected, DeleteTransaction(svcs.Ledger))

	app.Post("/deposits", protected, OpenDeposit(svcs.Deposit))
	app.Get("/deposits", protected, ListDeposits(svcs.Deposit))
	app.Get("/deposits/:id", protected, GetDeposit(svcs.Deposit))
	app.Put("/deposits/:id", protected, UpdateDeposit(svcs.Deposit))
	app.Delete("/deposits/:id", protected, CloseDeposit(svcs.Deposit))

	app.Post("/loans", protected, CreateLoan(svcs.Loan))
	app.Get("/loans", protected, ListLoans(svcs.Loan))
	app.Get("/loans/:id", protected, GetLoan(svcs.Loan))
	app.Put("/loans/:id", protected, UpdateLoan(svcs.Loan))
	app.Delete("/loans/:id", protected, DeleteLoan(svcs.Loan))

	return app
}
