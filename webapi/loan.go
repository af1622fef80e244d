package webapi

import (
	loansvc "github.com/bankhive/bankcore/pkg/service/loan"

	"github.com/bankhive/bankcore/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest is the payload for POST /loans.
type CreateLoanRequest struct {
	AccountID      uint            `json:"account_id" validate:"required"`
	UserID         uint            `json:"user_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	StartDate      string          `json:"start_date" validate:"required"`
	EndDate        string          `json:"end_date" validate:"required"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Status         string          `json:"status"`
}

// UpdateLoanRequest is the payload for PUT /loans/:id. user_id names the
// client an administrator updates the loan for; clients omit it.
type UpdateLoanRequest struct {
	AccountID      uint            `json:"account_id" validate:"required"`
	UserID         uint            `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	StartDate      string          `json:"start_date" validate:"required"`
	EndDate        string          `json:"end_date" validate:"required"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Status         string          `json:"status"`
}

// CreateLoan handles POST /loans.
func CreateLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[CreateLoanRequest](c)
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
		l, err := svc.Create(c.Context(), loansvc.CreateInput{
			AccountID:      req.AccountID,
			UserID:         req.UserID,
			Amount:         req.Amount,
			InterestRate:   req.InterestRate,
			StartDate:      start,
			EndDate:        end,
			MonthlyPayment: req.MonthlyPayment,
			Status:         req.Status,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Loan created", dto.FromLoan(l))
	}
}

// GetLoan handles GET /loans/:id.
func GetLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		l, err := svc.Get(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Loan found", dto.FromLoan(l))
	}
}

// ListLoans handles GET /loans. With both status and user_id query
// parameters it narrows to that client's loans in that state.
func ListLoans(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Query("status")
		userID := c.QueryInt("user_id")
		if status != "" || userID > 0 {
			if status == "" || userID < 1 {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid filter", "status and user_id must be supplied together")
			}
			ls, err := svc.ListByStatusAndUser(c.Context(), status, uint(userID))
			if err != nil {
				return DomainErrorResponse(c, err)
			}
			return SuccessResponseJSON(c, fiber.StatusOK, "Loans found", dto.FromLoans(ls))
		}
		ls, err := svc.ListAll(c.Context())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Loans found", dto.FromLoans(ls))
	}
}

// UpdateLoan handles PUT /loans/:id.
func UpdateLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actingID, err := ActingUserID(c)
		if err != nil {
			return err
		}
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		req, err := BindAndValidate[UpdateLoanRequest](c)
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
		l, err := svc.Update(c.Context(), actingID, uint(id), loansvc.UpdateInput{
			AccountID:      req.AccountID,
			TargetUserID:   req.UserID,
			Amount:         req.Amount,
			InterestRate:   req.InterestRate,
			StartDate:      start,
			EndDate:        end,
			MonthlyPayment: req.MonthlyPayment,
			Status:         req.Status,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Loan updated", dto.FromLoan(l))
	}
}

// DeleteLoan handles DELETE /loans/:id.
func DeleteLoan(svc *loansvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		if err := svc.Delete(c.Context(), uint(id)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Loan deleted", nil)
	}
}
