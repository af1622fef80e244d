package webapi

import (
	"github.com/bankhive/bankcore/pkg/dto"
	"github.com/bankhive/bankcore/pkg/service/auth"
	"github.com/bankhive/bankcore/pkg/service/user"
	"github.com/gofiber/fiber/v2"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Surname  string `json:"surname" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN CLIENT admin client"`
}

// Login handles POST /auth/login.
func Login(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return err
		}
		token, err := svc.Login(c.Context(), req.Email, req.Password)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
	}
}

// RegisterUser handles POST /users.
func RegisterUser(svc *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := BindAndValidate[RegisterRequest](c)
		if err != nil {
			return err
		}
		u, err := svc.Register(c.Context(), user.RegisterInput{
			Name:     req.Name,
			Surname:  req.Surname,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "User registered", dto.FromUser(u))
	}
}

// GetUser handles GET /users/:id.
func GetUser(svc *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		u, err := svc.Get(c.Context(), uint(id))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User found", dto.FromUser(u))
	}
}

// DeleteUser handles DELETE /users/:id.
func DeleteUser(svc *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid id", "id must be a positive integer")
		}
		if err := svc.Delete(c.Context(), uint(id)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}
