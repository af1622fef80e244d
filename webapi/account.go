package webapi

import (
	accountsvc "github.com/bankhive/bankcore/pkg/service/account"

	"github.com/bankhive/bankcore/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for POST /accounts.
type CreateAccountRequest struct {
	UserID  uint            `json:"user_id" validate:"required"`
	Number  string          `json:"account_number" validate:"required,len=16,numeric"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type" validate:"required"`
}

// UpdateAccountRequest is the payload for PUT /accounts/:id; absent fields are
// left unchanged.
type UpdateAccountRequest struct {
	Number  *string          `json:"account_number"`
	Balance *decimal.Decimal `json:"balance"`
	Type    *string          `json:"type"`
}

// CreateAccount handles POST /accounts.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[CreateAccountRequest](c)
		if err != nil {
			return err
		}
		a, err := svc.Create(c.Context(), accountsvc.CreateInput{
			UserID:  req.UserID,
			Number:  req.Number,
			Balance: req.Balance,
			Type:    req.Type,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account created", dto.FromAccount(a))
	}
}

// GetAccount handles GET /accounts/:id.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		a, err := svc.Get(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account found", dto.FromAccount(a))
	}
}

// ListAccounts handles GET /accounts with the optional filter query
// parameters account_number, min_balance, max_balance and type. Without
// filters it lists every account.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := accountsvc.FilterInput{
			Number: c.Query("account_number"),
			Type:   c.Query("type"),
		}
		if raw := c.Query("min_balance"); raw != "" {
			min, err := decimal.NewFromString(raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid filter", "min_balance must be a number")
			}
			in.MinBalance = &min
		}
		if raw := c.Query("max_balance"); raw != "" {
			max, err := decimal.NewFromString(raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid filter", "max_balance must be a number")
			}
			in.MaxBalance = &max
		}
		as, err := svc.Filter(c.Context(), in)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Accounts found", dto.FromAccounts(as))
	}
}

// ListAccountsByUser handles GET /users/:id/accounts.
func ListAccountsByUser(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		as, err := svc.ListByUser(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Accounts found", dto.FromAccounts(as))
	}
}

// UpdateAccount handles PUT /accounts/:id.
func UpdateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		req, err := BindAndValidate[UpdateAccountRequest](c)
		if err != nil {
			return err
		}
		a, err := svc.Update(c.Context(), uint(id), accountsvc.UpdateInput{
			Number:  req.Number,
			Balance: req.Balance,
			Type:    req.Type,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account updated", dto.FromAccount(a))
	}
}

// DeleteAccount handles DELETE /accounts/:id.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		if err := svc.Delete(c.Context(), uint(id)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}
