package webapi

import (
	"github.com/bankhive/bankcore/pkg/dto"
	"github.com/bankhive/bankcore/pkg/service/ledger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferRequest is the payload for POST /transactions.
type TransferRequest struct {
	SenderAccountID      uint            `json:"sender_account_id" validate:"required"`
	BeneficiaryAccountID uint            `json:"beneficiary_account_id" validate:"required"`
	Amount               decimal.Decimal `json:"amount"`
	Type                 string          `json:"type" validate:"required"`
}

// AmendTransactionRequest is the payload for PATCH /transactions/:id/amount.
type AmendTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddTransfer handles POST /transactions. The initiating user comes from the
// verified token, never from the body.
func AddTransfer(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := ActingUserID(c)
		if err != nil {
			return err
		}
		req, err := BindAndValidate[TransferRequest](c)
		if err != nil {
			return err
		}
		t, err := svc.AddTransfer(c.Context(), ledger.TransferInput{
			SenderAccountID:      req.SenderAccountID,
			BeneficiaryAccountID: req.BeneficiaryAccountID,
			Amount:               req.Amount,
			Type:                 req.Type,
			UserID:               userID,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer settled", dto.FromTransaction(t))
	}
}

// AmendTransaction handles PATCH /transactions/:id/amount.
func AmendTransaction(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		req, err := BindAndValidate[AmendTransactionRequest](c)
		if err != nil {
			return err
		}
		t, err := svc.AmendTransferAmount(c.Context(), uint(id), req.Amount)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction amended", dto.FromTransaction(t))
	}
}

// GetTransaction handles GET /transactions/:id.
func GetTransaction(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		t, err := svc.Get(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction found", dto.FromTransaction(t))
	}
}

// ListTransactions handles GET /transactions with the optional filter query
// parameters type, sender_account_id and beneficiary_account_id.
func ListTransactions(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := ledger.FilterInput{Type: c.Query("type")}
		if raw := c.QueryInt("sender_account_id"); raw > 0 {
			id := uint(raw)
			in.SenderAccountID = &id
		}
		if raw := c.QueryInt("beneficiary_account_id"); raw > 0 {
			id := uint(raw)
			in.BeneficiaryAccountID = &id
		}
		ts, err := svc.Filter(c.Context(), in)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", dto.FromTransactions(ts))
	}
}

// ListTransactionsByUser handles GET /users/:id/transactions.
func ListTransactionsByUser(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		ts, err := svc.ListByUser(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions found", dto.FromTransactions(ts))
	}
}

// DeleteTransaction handles DELETE /transactions/:id.
func DeleteTransaction(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		if err := svc.DeleteTransaction(c.Context(), uint(id)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}
