// Package user manages user records: registration with a hashed password,
// lookups and guarded deletion.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bankhive/bankcore/pkg/domain"
	"github.com/bankhive/bankcore/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service provides business logic for user management.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a user service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Role     string
}

// Register creates a user with a bcrypt-hashed password. The role defaults to
// CLIENT when unspecified.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role := domain.RoleClient
	if in.Role != "" {
		var err error
		if role, err = domain.ParseRole(in.Role); err != nil {
			return nil, err
		}
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidArgument)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Name:     in.Name,
		Surname:  in.Surname,
		Email:    in.Email,
		Password: string(hash),
		Role:     role,
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "op", "RegisterUser", "id", u.ID, "role", u.Role)
	return u, nil
}

// Get returns a single user.
func (s *Service) Get(ctx context.Context, id uint) (*domain.User, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.Get(ctx, id)
}

// GetByEmail returns the user registered under the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.GetByEmail(ctx, email)
}

// Delete removes a user who owns no accounts; owned accounts block the
// deletion with ErrConflict.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := users.Get(ctx, id); err != nil {
			return err
		}
		n, err := accounts.CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: user owns accounts", domain.ErrConflict)
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("user deleted", "op", "DeleteUser", "id", id)
	return nil
}
