package webapi

import (
	"errors"
	"time"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/service/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Response is the standard success envelope.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorResponseJSON writes a problem-details payload.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// DomainErrorResponse maps a service error to its stable status code and
// writes it. Unexpected errors become a generic 500 carrying only the request
// correlation id.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	if status == fiber.StatusInternalServerError {
		rid, _ := c.Locals("requestid").(string)
		return ErrorResponseJSON(c, status, "Internal error", "correlation id: "+rid)
	}
	return ErrorResponseJSON(c, status, utils.StatusMessage(status), err.Error())
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrDepositNotFound),
		errors.Is(err, domain.ErrLoanNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInsufficientFunds):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateAccountNumber),
		errors.Is(err, domain.ErrAlreadyLinked),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrOwnershipMismatch):
		return fiber.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

var validate = validator.New()

// BindAndValidate parses the request body into T and validates it. A non-nil
// error is a *fiber.Error the app error handler renders as problem details.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(input); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return &input, nil
}

// ActingUserID resolves the authenticated user's id from the verified JWT the
// auth middleware stored on the context.
func ActingUserID(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "malformed claims")
	}
	id, ok := auth.UserIDFromClaims(claims)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "malformed claims")
	}
	return id, nil
}

// parseDate parses a YYYY-MM-DD request field.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
