package webapi

import (
	depositsvc "github.com/bankhive/bankcore/pkg/service/deposit"

	"github.com/bankhive/bankcore/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OpenDepositRequest is the payload for POST /deposits. user_id names the
// client an administrator opens the deposit for; clients omit it.
type OpenDepositRequest struct {
	AccountID    uint            `json:"account_id" validate:"required"`
	UserID       uint            `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    string          `json:"start_date" validate:"required"`
	EndDate      string          `json:"end_date" validate:"required"`
	Status       string          `json:"status"`
}

// UpdateDepositRequest is the payload for PUT /deposits/:id.
type UpdateDepositRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	Status       *string          `json:"status"`
}

// OpenDeposit handles POST /deposits.
func OpenDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actingID, err := ActingUserID(c)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[OpenDepositRequest](c)
		if err != nil {
			return err
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", "start_date must be YYYY-MM-DD")
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", "end_date must be YYYY-MM-DD")
		}
		d, err := svc.Open(c.Context(), actingID, depositsvc.OpenInput{
			AccountID:    req.AccountID,
			TargetUserID: req.UserID,
			Amount:       req.Amount,
			InterestRate: req.InterestRate,
			StartDate:    start,
			EndDate:      end,
			Status:       req.Status,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Deposit opened", dto.FromDeposit(d))
	}
}

// GetDeposit handles GET /deposits/:id.
func GetDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		d, err := svc.Get(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit found", dto.FromDeposit(d))
	}
}

// ListDeposits handles GET /deposits.
func ListDeposits(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ds, err := svc.ListAll(c.Context())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposits found", dto.FromDeposits(ds))
	}
}

// ListDepositsByUser handles GET /users/:id/deposits.
func ListDepositsByUser(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		ds, err := svc.ListByUser(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposits found", dto.FromDeposits(ds))
	}
}

// UpdateDeposit handles PUT /deposits/:id.
func UpdateDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actingID, err := ActingUserID(c)
		if err != nil {
			return err
		}
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		req, err := BindAndValidate[UpdateDepositRequest](c)
		if err != nil {
			return err
		}
		in := depositsvc.UpdateInput{
			Amount:       req.Amount,
			InterestRate: req.InterestRate,
			Status:       req.Status,
		}
		if req.StartDate != nil {
			start, err := parseDate(*req.StartDate)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", "start_date must be YYYY-MM-DD")
			}
			in.StartDate = &start
		}
		if req.EndDate != nil {
			end, err := parseDate(*req.EndDate)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", "end_date must be YYYY-MM-DD")
			}
			in.EndDate = &end
		}
		d, err := svc.Update(c.Context(), actingID, uint(id), in)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit updated", dto.FromDeposit(d))
	}
}

// CloseDeposit handles DELETE /deposits/:id.
func CloseDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actingID, err := ActingUserID(c)
		if err != nil {
			return err
		}
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		if err := svc.Close(c.Context(), actingID, uint(id)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit closed", nil)
	}
}
